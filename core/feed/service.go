package feed

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

type (
	API interface {
		GetClassroomFeed(ctx context.Context, classroomID int) ([]Item, error)
	}

	// Service produces the unified, sorted, role-filtered activity stream for
	// a classroom and owns its per-classroom query cache.
	Service struct {
		api API

		mu    sync.Mutex
		cache map[int][]Item // classroomID -> raw feed
	}
)

var _ core.FeedInvalidator = (*Service)(nil)

func NewService(api API) *Service {
	return &Service{api: api, cache: make(map[int][]Item)}
}

// Build returns the classroom feed for the acting user: fetched (through the
// cache), re-sorted newest first regardless of the server's ordering, then
// filtered by the student's active tab. Teachers and school admins see the
// stream unfiltered, with edit/delete affordances where they apply.
func (svc *Service) Build(ctx context.Context, sess user.Session, classroomID int, tab Tab) ([]Item, error) {
	raw, err := svc.fetch(ctx, classroomID)
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(raw))
	copy(items, raw)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	items = filterByTab(sess, items, tab)

	for i := range items {
		svc.setAffordances(&items[i], sess)
	}
	return items, nil
}

// Invalidate drops a classroom's cached feed so the next Build re-fetches.
func (svc *Service) Invalidate(classroomID int) {
	svc.mu.Lock()
	delete(svc.cache, classroomID)
	svc.mu.Unlock()
}

func (svc *Service) fetch(ctx context.Context, classroomID int) ([]Item, error) {
	svc.mu.Lock()
	items, ok := svc.cache[classroomID]
	svc.mu.Unlock()
	if ok {
		return items, nil
	}

	items, err := svc.api.GetClassroomFeed(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	svc.mu.Lock()
	svc.cache[classroomID] = items
	svc.mu.Unlock()
	return items, nil
}

// filterByTab narrows a student's feed to the active tab; other roles see
// everything. Filtering is idempotent: re-filtering by the same tab is a
// no-op.
func filterByTab(sess user.Session, items []Item, tab Tab) []Item {
	if !sess.IsStudent() || tab == TabAll || tab == "" {
		return items
	}
	filtered := items[:0]
	for _, it := range items {
		if it.Type == ItemType(tab) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

func (svc *Service) setAffordances(it *Item, sess user.Session) {
	switch it.Type {
	case TypeAssignment, TypeMaterial:
		it.CanEdit = sess.IsTeacher()
		it.CanDelete = sess.IsTeacher()
	case TypeMessage:
		owned := ownsMessage(*it, sess)
		it.CanEdit = owned
		it.CanDelete = owned
	}
}

// ownsMessage decides edit/delete eligibility for a message item. The author
// id is authoritative; the normalized-username comparison only remains for
// servers that omit createdById on feed rows, since display names can
// collide.
func ownsMessage(it Item, sess user.Session) bool {
	if it.CreatedByID.Valid {
		return it.CreatedByID.Int == sess.User.ID
	}
	return normalizeAuthor(it.CreatedBy) != "" && normalizeAuthor(it.CreatedBy) == normalizeAuthor(sess.User.Username)
}

// normalizeAuthor lowercases and strips all whitespace.
func normalizeAuthor(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
