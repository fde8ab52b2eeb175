package dummyapi

import (
	"context"

	"github.com/trezcool/shule/core/classroom"
)

type classroomAPI struct {
	db *DB
}

var _ classroom.API = (*classroomAPI)(nil) // interface compliance check

func NewClassroomAPI(db *DB) classroom.API {
	return &classroomAPI{db: db}
}

func (api *classroomAPI) ListSchoolClassrooms(_ context.Context, schoolID int) ([]classroom.Classroom, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	out := make([]classroom.Classroom, 0)
	for _, cr := range api.db.classrooms {
		if cr.School != nil && cr.School.ID == schoolID {
			out = append(out, *cr)
		}
	}
	return out, nil
}

func (api *classroomAPI) ListTeacherClassrooms(_ context.Context, teacherID int) ([]classroom.Classroom, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	// the dummy backend does not track teacher ownership; return everything
	out := make([]classroom.Classroom, 0, len(api.db.classrooms))
	for _, cr := range api.db.classrooms {
		out = append(out, *cr)
	}
	return out, nil
}

func (api *classroomAPI) GetClassroom(_ context.Context, id int) (classroom.Classroom, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	if cr, ok := api.db.classrooms[id]; ok {
		return *cr, nil
	}
	return classroom.Classroom{}, classroom.ErrNotFound
}

func (api *classroomAPI) CreateClassroom(_ context.Context, p classroom.Payload) (classroom.Classroom, error) {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	cr := classroom.Classroom{
		ID:    api.db.nextPK(),
		Name:  p.Name,
		Grade: p.GradeNumber(),
	}
	api.db.classrooms[cr.ID] = &cr
	return cr, nil
}

func (api *classroomAPI) UpdateClassroom(_ context.Context, id int, p classroom.Payload) (classroom.Classroom, error) {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	cr, ok := api.db.classrooms[id]
	if !ok {
		return classroom.Classroom{}, classroom.ErrNotFound
	}
	cr.Name = p.Name
	cr.Grade = p.GradeNumber()
	return *cr, nil
}

func (api *classroomAPI) DeleteClassroom(_ context.Context, id int) error {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	if _, ok := api.db.classrooms[id]; !ok {
		return classroom.ErrNotFound
	}
	delete(api.db.classrooms, id)
	return nil
}

func (api *classroomAPI) ListStudentLinks(_ context.Context) ([]classroom.StudentLink, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	out := make([]classroom.StudentLink, 0, len(api.db.links))
	for _, l := range api.db.links {
		out = append(out, *l)
	}
	return out, nil
}

func (api *classroomAPI) AssignStudent(_ context.Context, nl classroom.NewStudentLink) (classroom.StudentLink, error) {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	return api.link(nl), nil
}

func (api *classroomAPI) AssignStudents(_ context.Context, nls []classroom.NewStudentLink) ([]classroom.StudentLink, error) {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	out := make([]classroom.StudentLink, 0, len(nls))
	for _, nl := range nls {
		out = append(out, api.link(nl))
	}
	return out, nil
}

func (api *classroomAPI) RemoveStudentLink(_ context.Context, id int) error {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	if _, ok := api.db.links[id]; !ok {
		return classroom.ErrNotFound
	}
	delete(api.db.links, id)
	return nil
}

// link must be called with db.mu held.
func (api *classroomAPI) link(nl classroom.NewStudentLink) classroom.StudentLink {
	l := classroom.StudentLink{
		ID:          api.db.nextPK(),
		StudentID:   nl.StudentID,
		ClassroomID: nl.ClassroomID,
	}
	api.db.links[l.ID] = &l
	return l
}
