package dummyapi

import (
	"context"
	"time"

	"github.com/trezcool/shule/core/assignment"
)

type assignmentAPI struct {
	db *DB
}

var _ assignment.API = (*assignmentAPI)(nil) // interface compliance check

func NewAssignmentAPI(db *DB) assignment.API {
	return &assignmentAPI{db: db}
}

func (api *assignmentAPI) ListAssignments(_ context.Context) ([]assignment.Assignment, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	out := make([]assignment.Assignment, 0, len(api.db.assignments))
	for _, a := range api.db.assignments {
		out = append(out, *a)
	}
	return out, nil
}

func (api *assignmentAPI) GetAssignment(_ context.Context, id int) (assignment.Assignment, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	if a, ok := api.db.assignments[id]; ok {
		return *a, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (api *assignmentAPI) CreateAssignment(_ context.Context, na assignment.NewAssignment) (assignment.Assignment, error) {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	a := assignment.Assignment{
		ID:          api.db.nextPK(),
		Title:       na.Title,
		Description: na.Description,
		DueDate:     na.DueDate,
		CreatedByID: na.CreatedByID,
		ClassroomID: na.ClassroomID,
		CreatedAt:   time.Now().UTC(),
	}
	api.db.assignments[a.ID] = &a
	return a, nil
}

func (api *assignmentAPI) UpdateAssignment(_ context.Context, id int, na assignment.NewAssignment) (assignment.Assignment, error) {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	a, ok := api.db.assignments[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	a.Title = na.Title
	a.Description = na.Description
	a.DueDate = na.DueDate
	return *a, nil
}

func (api *assignmentAPI) DeleteAssignment(_ context.Context, id int) error {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	if _, ok := api.db.assignments[id]; !ok {
		return assignment.ErrNotFound
	}
	delete(api.db.assignments, id)
	return nil
}
