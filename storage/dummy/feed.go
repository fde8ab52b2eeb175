package dummyapi

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core/feed"
)

type feedAPI struct {
	db *DB
}

var _ feed.API = (*feedAPI)(nil) // interface compliance check

func NewFeedAPI(db *DB) feed.API {
	return &feedAPI{db: db}
}

// GetClassroomFeed merges assignment, material and class-message rows the
// way the real backend does. Rows come back unordered; sorting is the
// client's job.
func (api *feedAPI) GetClassroomFeed(_ context.Context, classroomID int) ([]feed.Item, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	items := make([]feed.Item, 0)

	for _, a := range api.db.assignments {
		if a.ClassroomID != classroomID {
			continue
		}
		items = append(items, feed.Item{
			Type:        feed.TypeAssignment,
			ID:          null.IntFrom(a.ID),
			Title:       null.StringFrom(a.Title),
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
			CreatedBy:   api.db.userName(a.CreatedByID),
			CreatedByID: null.IntFrom(a.CreatedByID),
		})
	}

	for _, m := range api.db.materials {
		if m.ClassroomID != classroomID {
			continue
		}
		items = append(items, feed.Item{
			Type:        feed.TypeMaterial,
			ID:          null.IntFrom(m.ID),
			Title:       null.StringFrom(m.Title),
			Description: m.Description.String,
			CreatedAt:   m.CreatedAt,
			CreatedBy:   api.db.userName(m.UploadedByID),
			CreatedByID: null.IntFrom(m.UploadedByID),
			FileURL:     null.StringFrom(m.FileURL),
		})
	}

	for _, c := range api.db.comments {
		if !c.IsClassMessage() || c.ClassroomID.Int != classroomID {
			continue
		}
		items = append(items, feed.Item{
			Type:        feed.TypeMessage,
			ID:          null.IntFrom(c.ID),
			Description: c.Content,
			CreatedAt:   c.CreatedAt,
			CreatedBy:   c.AuthorName(),
			CreatedByID: null.IntFrom(c.CreatedByID),
		})
	}

	return items, nil
}
