package assignment

import (
	"time"

	"github.com/trezcool/shule/core"
)

type Assignment struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	CreatedByID int       `json:"createdById"`
	ClassroomID int       `json:"classroomId"`
	CreatedAt   time.Time `json:"createdAt,omitempty"` // UTC
}

// NewAssignment contains information needed to create or replace an Assignment.
type NewAssignment struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	CreatedByID int       `json:"createdById" validate:"required"`
	ClassroomID int       `json:"classroomId" validate:"required"`
}

func (na *NewAssignment) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	return core.CheckStruct(na)
}
