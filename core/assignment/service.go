package assignment

import (
	"context"
	"errors"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrNotFound = errors.New("assignment not found")
)

type (
	API interface {
		ListAssignments(ctx context.Context) ([]Assignment, error)
		GetAssignment(ctx context.Context, id int) (Assignment, error)
		CreateAssignment(ctx context.Context, na NewAssignment) (Assignment, error)
		UpdateAssignment(ctx context.Context, id int, na NewAssignment) (Assignment, error)
		DeleteAssignment(ctx context.Context, id int) error
	}

	Service struct {
		api  API
		feed core.FeedInvalidator
	}
)

func NewService(api API, feed core.FeedInvalidator) *Service {
	return &Service{api: api, feed: feed}
}

func (svc *Service) All(ctx context.Context) ([]Assignment, error) {
	return svc.api.ListAssignments(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Assignment, error) {
	return svc.api.GetAssignment(ctx, id)
}

func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	if err := na.Validate(); err != nil {
		return Assignment{}, err
	}
	a, err := svc.api.CreateAssignment(ctx, na)
	if err != nil {
		return Assignment{}, err
	}
	svc.feed.Invalidate(a.ClassroomID)
	return a, nil
}

func (svc *Service) Update(ctx context.Context, id int, na NewAssignment) (Assignment, error) {
	if err := na.Validate(); err != nil {
		return Assignment{}, err
	}
	a, err := svc.api.UpdateAssignment(ctx, id, na)
	if err != nil {
		return Assignment{}, err
	}
	svc.feed.Invalidate(a.ClassroomID)
	return a, nil
}

func (svc *Service) Delete(ctx context.Context, id, classroomID int) error {
	if err := svc.api.DeleteAssignment(ctx, id); err != nil {
		return err
	}
	svc.feed.Invalidate(classroomID)
	return nil
}
