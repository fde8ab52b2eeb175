package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/classroom"
)

type classroomAPI struct {
	client *Client
}

var _ classroom.API = (*classroomAPI)(nil) // interface compliance check

func NewClassroomAPI(client *Client) classroom.API {
	return &classroomAPI{client: client}
}

func (api *classroomAPI) ListSchoolClassrooms(ctx context.Context, schoolID int) ([]classroom.Classroom, error) {
	q := make(url.Values)
	q.Set("schoolId", strconv.Itoa(schoolID))
	return api.list(ctx, q)
}

func (api *classroomAPI) ListTeacherClassrooms(ctx context.Context, teacherID int) ([]classroom.Classroom, error) {
	q := make(url.Values)
	q.Set("teacherId", strconv.Itoa(teacherID))
	return api.list(ctx, q)
}

func (api *classroomAPI) list(ctx context.Context, q url.Values) ([]classroom.Classroom, error) {
	var out []classroom.Classroom
	if err := api.client.get(ctx, "/classrooms", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *classroomAPI) GetClassroom(ctx context.Context, id int) (classroom.Classroom, error) {
	var out classroom.Classroom
	if err := api.client.get(ctx, fmt.Sprintf("/classrooms/%d", id), nil, &out); err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return classroom.Classroom{}, classroom.ErrNotFound
		}
		return classroom.Classroom{}, err
	}
	return out, nil
}

func (api *classroomAPI) CreateClassroom(ctx context.Context, p classroom.Payload) (classroom.Classroom, error) {
	var out classroom.Classroom
	if err := api.client.post(ctx, "/classrooms", nil, p, &out); err != nil {
		return classroom.Classroom{}, err
	}
	return out, nil
}

func (api *classroomAPI) UpdateClassroom(ctx context.Context, id int, p classroom.Payload) (classroom.Classroom, error) {
	var out classroom.Classroom
	if err := api.client.put(ctx, fmt.Sprintf("/classrooms/%d", id), p, &out); err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return classroom.Classroom{}, classroom.ErrNotFound
		}
		return classroom.Classroom{}, err
	}
	return out, nil
}

func (api *classroomAPI) DeleteClassroom(ctx context.Context, id int) error {
	if err := api.client.delete(ctx, fmt.Sprintf("/classrooms/%d", id), nil); err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return classroom.ErrNotFound
		}
		return err
	}
	return nil
}

func (api *classroomAPI) ListStudentLinks(ctx context.Context) ([]classroom.StudentLink, error) {
	var out []classroom.StudentLink
	if err := api.client.get(ctx, "/student-classrooms", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *classroomAPI) AssignStudent(ctx context.Context, nl classroom.NewStudentLink) (classroom.StudentLink, error) {
	var out classroom.StudentLink
	if err := api.client.post(ctx, "/student-classrooms", nil, nl, &out); err != nil {
		return classroom.StudentLink{}, err
	}
	return out, nil
}

func (api *classroomAPI) AssignStudents(ctx context.Context, nls []classroom.NewStudentLink) ([]classroom.StudentLink, error) {
	var out []classroom.StudentLink
	if err := api.client.post(ctx, "/student-classrooms/bulk", nil, nls, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *classroomAPI) RemoveStudentLink(ctx context.Context, id int) error {
	return api.client.delete(ctx, fmt.Sprintf("/student-classrooms/removeStudent/%d", id), nil)
}
