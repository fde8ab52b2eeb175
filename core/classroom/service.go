package classroom

import (
	"context"
	"errors"
)

var (
	// errors
	ErrNotFound = errors.New("classroom not found")
)

type (
	API interface {
		ListSchoolClassrooms(ctx context.Context, schoolID int) ([]Classroom, error)
		ListTeacherClassrooms(ctx context.Context, teacherID int) ([]Classroom, error)
		GetClassroom(ctx context.Context, id int) (Classroom, error)
		CreateClassroom(ctx context.Context, p Payload) (Classroom, error)
		UpdateClassroom(ctx context.Context, id int, p Payload) (Classroom, error)
		DeleteClassroom(ctx context.Context, id int) error

		ListStudentLinks(ctx context.Context) ([]StudentLink, error)
		AssignStudent(ctx context.Context, nl NewStudentLink) (StudentLink, error)
		AssignStudents(ctx context.Context, nls []NewStudentLink) ([]StudentLink, error)
		RemoveStudentLink(ctx context.Context, id int) error
	}

	Service struct {
		api API
	}
)

func NewService(api API) *Service {
	return &Service{api: api}
}

func (svc *Service) ForSchool(ctx context.Context, schoolID int) ([]Classroom, error) {
	return svc.api.ListSchoolClassrooms(ctx, schoolID)
}

func (svc *Service) ForTeacher(ctx context.Context, teacherID int) ([]Classroom, error) {
	return svc.api.ListTeacherClassrooms(ctx, teacherID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Classroom, error) {
	return svc.api.GetClassroom(ctx, id)
}

func (svc *Service) Create(ctx context.Context, p Payload) (Classroom, error) {
	if err := p.Validate(); err != nil {
		return Classroom{}, err
	}
	return svc.api.CreateClassroom(ctx, p)
}

func (svc *Service) Update(ctx context.Context, id int, p Payload) (Classroom, error) {
	if err := p.Validate(); err != nil {
		return Classroom{}, err
	}
	return svc.api.UpdateClassroom(ctx, id, p)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.api.DeleteClassroom(ctx, id)
}

// Students returns the student links of one classroom; the backend only
// exposes the full association list.
func (svc *Service) Students(ctx context.Context, classroomID int) ([]StudentLink, error) {
	links, err := svc.api.ListStudentLinks(ctx)
	if err != nil {
		return nil, err
	}
	scoped := make([]StudentLink, 0, len(links))
	for _, l := range links {
		if l.ClassroomID == classroomID {
			scoped = append(scoped, l)
		}
	}
	return scoped, nil
}

func (svc *Service) AssignStudent(ctx context.Context, nl NewStudentLink) (StudentLink, error) {
	if err := nl.Validate(); err != nil {
		return StudentLink{}, err
	}
	return svc.api.AssignStudent(ctx, nl)
}

func (svc *Service) AssignStudents(ctx context.Context, nls []NewStudentLink) ([]StudentLink, error) {
	for i := range nls {
		if err := nls[i].Validate(); err != nil {
			return nil, err
		}
	}
	return svc.api.AssignStudents(ctx, nls)
}

func (svc *Service) RemoveStudent(ctx context.Context, linkID int) error {
	return svc.api.RemoveStudentLink(ctx, linkID)
}
