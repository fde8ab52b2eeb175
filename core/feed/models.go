package feed

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/comment"
)

type ItemType string

const (
	TypeAssignment ItemType = "assignment"
	TypeMaterial   ItemType = "material"
	TypeMessage    ItemType = "message"
)

// Tab is the feed filter a student toggles between.
type Tab string

const (
	TabAll        Tab = "all"
	TabAssignment Tab = "assignment"
	TabMaterial   Tab = "material"
	TabMessage    Tab = "message"
)

// Item is a derived, read-only projection merging assignments, materials and
// class messages into one classroom timeline. The backend produces the merged
// rows; the client re-sorts them and computes per-role affordances.
type Item struct {
	Type        ItemType    `json:"type"`
	ID          null.Int    `json:"id,omitempty"`
	Title       null.String `json:"title,omitempty"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
	CreatedBy   string      `json:"createdBy"`
	CreatedByID null.Int    `json:"createdById,omitempty"`
	FileURL     null.String `json:"fileUrl,omitempty"`

	// role-gated action affordances, computed client-side
	CanEdit   bool `json:"-"`
	CanDelete bool `json:"-"`
}

// Body strips the class-message tag off message items for display.
func (it Item) Body() string {
	if it.Type == TypeMessage {
		return core.CleanString(strings.TrimPrefix(it.Description, comment.MessagePrefix))
	}
	return it.Description
}
