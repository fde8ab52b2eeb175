package classroom

import (
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

type (
	Ref struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	Classroom struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Grade   int    `json:"grade"`
		Subject *Ref   `json:"subject,omitempty"`
		School  *Ref   `json:"school,omitempty"`
	}

	// Payload creates or replaces a Classroom.
	Payload struct {
		Name      string   `json:"name" validate:"required"`
		Grade     string   `json:"grade" validate:"required,numeric"`
		TeacherID null.Int `json:"teacherId,omitempty"`
		SubjectID int      `json:"subjectId" validate:"required"`
	}

	// StudentLink associates one student with one classroom.
	StudentLink struct {
		ID          int `json:"id"`
		StudentID   int `json:"studentId"`
		ClassroomID int `json:"classroomId"`
	}

	NewStudentLink struct {
		StudentID   int `json:"studentId" validate:"required"`
		ClassroomID int `json:"classroomId" validate:"required"`
	}
)

func (p *Payload) Validate() error {
	p.Name = core.CleanString(p.Name)
	p.Grade = core.CleanString(p.Grade)
	return core.CheckStruct(p)
}

func (p Payload) GradeNumber() int {
	n, _ := strconv.Atoi(p.Grade)
	return n
}

func (nl *NewStudentLink) Validate() error {
	return core.CheckStruct(nl)
}
