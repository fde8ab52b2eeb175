package stubapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/classroom"
	"github.com/trezcool/shule/core/comment"
	"github.com/trezcool/shule/core/feed"
	"github.com/trezcool/shule/core/material"
	"github.com/trezcool/shule/core/submission"
	"github.com/trezcool/shule/core/user"
	dummyapi "github.com/trezcool/shule/storage/dummy"
)

// the stub only needs a stable signing key, not a secret one
var signingKey = []byte("shule-stub-backend")

const sessionCookie = "SHULESESSION"

type handlers struct {
	auth        user.API
	assignments assignment.API
	submissions submission.API
	materials   material.API
	comments    comment.API
	feeds       feed.API
	classrooms  classroom.API
}

func registerRoutes(g *echo.Group, db *dummyapi.DB) {
	h := &handlers{
		auth:        dummyapi.NewAuthAPI(db),
		assignments: dummyapi.NewAssignmentAPI(db),
		submissions: dummyapi.NewSubmissionAPI(db),
		materials:   dummyapi.NewMaterialAPI(db),
		comments:    dummyapi.NewCommentAPI(db),
		feeds:       dummyapi.NewFeedAPI(db),
		classrooms:  dummyapi.NewClassroomAPI(db),
	}

	g.POST("/users/login", h.login)
	g.POST("/users/logout", h.logout)

	g.GET("/assignments", h.listAssignments)
	g.POST("/assignments", h.createAssignment)
	g.GET("/assignments/:id", h.getAssignment)
	g.PUT("/assignments/:id", h.updateAssignment)
	g.DELETE("/assignments/:id", h.deleteAssignment)

	g.GET("/submissions/assignment/:id", h.listSubmissions)
	g.POST("/submissions/:id/upload", h.uploadSubmission)
	g.DELETE("/submissions/:id", h.deleteSubmission)
	g.GET("/submissions/:id/download/:fileId", h.downloadSubmissionFile)

	g.GET("/learning-materials", h.listMaterials)
	g.GET("/learning-materials/classroom/:id", h.listClassroomMaterials)
	g.POST("/learning-materials/upload", h.uploadMaterial)
	g.GET("/learning-materials/download/:filename", h.downloadMaterial)
	g.DELETE("/learning-materials/:id", h.deleteMaterial)

	g.GET("/comments/classroom/:id", h.listClassroomComments)
	g.POST("/comments/classroom/:id", h.createClassroomComment)
	g.GET("/comments/assignment/:id", h.listAssignmentComments)
	g.POST("/comments/assignment/:id", h.createAssignmentComment)
	g.PUT("/comments/:id", h.updateComment)
	g.DELETE("/comments/:id", h.deleteComment)

	g.GET("/classrooms/:id/feed", h.classroomFeed)
	g.GET("/classrooms", h.listClassrooms)
	g.POST("/classrooms", h.createClassroom)
	g.GET("/classrooms/:id", h.getClassroom)
	g.PUT("/classrooms/:id", h.updateClassroom)
	g.DELETE("/classrooms/:id", h.deleteClassroom)

	g.GET("/student-classrooms", h.listStudentLinks)
	g.POST("/student-classrooms", h.assignStudent)
	g.POST("/student-classrooms/bulk", h.assignStudents)
	g.DELETE("/student-classrooms/removeStudent/:id", h.removeStudentLink)
}

func intParam(ctx echo.Context, name string) (int, error) {
	n, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return n, nil
}

func intQuery(ctx echo.Context, name string) int {
	n, _ := strconv.Atoi(ctx.QueryParam(name))
	return n
}

// --- auth ---

func (h *handlers) login(ctx echo.Context) error {
	usr, _, err := h.auth.Login(ctx.Request().Context(), ctx.QueryParam("username"), ctx.QueryParam("password"))
	if err != nil {
		return err
	}

	claims := &user.Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.Itoa(usr.ID),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
		Username:  usr.Username,
		FirstName: usr.FirstName,
		LastName:  usr.LastName,
		Role:      usr.Role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		return err
	}

	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	return ctx.JSON(http.StatusOK, struct {
		user.User
		Token string `json:"token"`
	}{usr, token})
}

func (h *handlers) logout(ctx echo.Context) error {
	ctx.SetCookie(&http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	return ctx.NoContent(http.StatusNoContent)
}

// --- assignments ---

func (h *handlers) listAssignments(ctx echo.Context) error {
	out, err := h.assignments.ListAssignments(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) getAssignment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	out, err := h.assignments.GetAssignment(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) createAssignment(ctx echo.Context) error {
	var na assignment.NewAssignment
	if err := ctx.Bind(&na); err != nil {
		return err
	}
	if err := na.Validate(); err != nil {
		return err
	}
	out, err := h.assignments.CreateAssignment(ctx.Request().Context(), na)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

func (h *handlers) updateAssignment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var na assignment.NewAssignment
	if err = ctx.Bind(&na); err != nil {
		return err
	}
	if err = na.Validate(); err != nil {
		return err
	}
	out, err := h.assignments.UpdateAssignment(ctx.Request().Context(), id, na)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) deleteAssignment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = h.assignments.DeleteAssignment(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// --- submissions ---

func (h *handlers) listSubmissions(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	out, err := h.submissions.ListSubmissions(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) uploadSubmission(ctx echo.Context) error {
	assignmentID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	studentID := intQuery(ctx, "studentId")

	form, err := ctx.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form expected")
	}

	ns := submission.NewSubmission{}
	if vals := form.Value["description"]; len(vals) > 0 {
		ns.Description = vals[0]
	}
	for _, fh := range form.File["file"] {
		f, oErr := fh.Open()
		if oErr != nil {
			return oErr
		}
		defer f.Close()
		ns.Files = append(ns.Files, submission.Upload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     f,
		})
	}
	if err = ns.Validate(); err != nil {
		return err
	}

	out, err := h.submissions.UploadSubmission(ctx.Request().Context(), assignmentID, studentID, ns)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

func (h *handlers) deleteSubmission(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = h.submissions.DeleteSubmission(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (h *handlers) downloadSubmissionFile(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	fileID, err := intParam(ctx, "fileId")
	if err != nil {
		return err
	}
	body, err := h.submissions.DownloadSubmissionFile(ctx.Request().Context(), id, fileID)
	if err != nil {
		return err
	}
	defer body.Close()
	return ctx.Stream(http.StatusOK, "application/octet-stream", body)
}

// --- learning materials ---

func (h *handlers) listMaterials(ctx echo.Context) error {
	out, err := h.materials.ListMaterials(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) listClassroomMaterials(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	out, err := h.materials.ListClassroomMaterials(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) uploadMaterial(ctx echo.Context) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form expected")
	}

	field := func(name string) string {
		if vals := form.Value[name]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}
	nm := material.NewMaterial{
		Title:       field("title"),
		Description: field("description"),
	}
	nm.ClassroomID, _ = strconv.Atoi(field("classroomId"))
	nm.UploadedByID, _ = strconv.Atoi(field("uploadedById"))

	if files := form.File["file"]; len(files) > 0 {
		f, oErr := files[0].Open()
		if oErr != nil {
			return oErr
		}
		defer f.Close()
		nm.File = material.Upload{
			Name:        files[0].Filename,
			ContentType: files[0].Header.Get("Content-Type"),
			Content:     f,
		}
	}
	if err = nm.Validate(); err != nil {
		return err
	}

	out, err := h.materials.UploadMaterial(ctx.Request().Context(), nm)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

func (h *handlers) downloadMaterial(ctx echo.Context) error {
	body, err := h.materials.DownloadMaterial(ctx.Request().Context(), ctx.Param("filename"))
	if err != nil {
		return err
	}
	defer body.Close()
	return ctx.Stream(http.StatusOK, "application/octet-stream", body)
}

func (h *handlers) deleteMaterial(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = h.materials.DeleteMaterial(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// --- comments ---

type commentBody struct {
	ID                 int      `json:"id"`
	CreatedByID        int      `json:"createdById"`
	RecipientStudentID null.Int `json:"recipientStudentId"`
	Content            string   `json:"content"`
}

func (h *handlers) listClassroomComments(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	out, err := h.comments.ListClassroomComments(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) createClassroomComment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var body commentBody
	if err = ctx.Bind(&body); err != nil {
		return err
	}
	out, err := h.comments.CreateClassroomComment(ctx.Request().Context(), id, body.CreatedByID, body.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

func (h *handlers) listAssignmentComments(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	out, err := h.comments.ListAssignmentComments(ctx.Request().Context(), id, intQuery(ctx, "userId"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) createAssignmentComment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var body commentBody
	if err = ctx.Bind(&body); err != nil {
		return err
	}
	out, err := h.comments.CreateAssignmentComment(ctx.Request().Context(), id, body.CreatedByID, body.RecipientStudentID, body.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

func (h *handlers) updateComment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var body commentBody
	if err = ctx.Bind(&body); err != nil {
		return err
	}
	out, err := h.comments.UpdateComment(ctx.Request().Context(), id, body.CreatedByID, body.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) deleteComment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = h.comments.DeleteComment(ctx.Request().Context(), id, intQuery(ctx, "userId")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// --- classrooms & feed ---

func (h *handlers) classroomFeed(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	out, err := h.feeds.GetClassroomFeed(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) listClassrooms(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	if teacherID := intQuery(ctx, "teacherId"); teacherID != 0 {
		out, err := h.classrooms.ListTeacherClassrooms(reqCtx, teacherID)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, out)
	}
	out, err := h.classrooms.ListSchoolClassrooms(reqCtx, intQuery(ctx, "schoolId"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) getClassroom(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	out, err := h.classrooms.GetClassroom(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) createClassroom(ctx echo.Context) error {
	var p classroom.Payload
	if err := ctx.Bind(&p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	out, err := h.classrooms.CreateClassroom(ctx.Request().Context(), p)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

func (h *handlers) updateClassroom(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var p classroom.Payload
	if err = ctx.Bind(&p); err != nil {
		return err
	}
	if err = p.Validate(); err != nil {
		return err
	}
	out, err := h.classrooms.UpdateClassroom(ctx.Request().Context(), id, p)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) deleteClassroom(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = h.classrooms.DeleteClassroom(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (h *handlers) listStudentLinks(ctx echo.Context) error {
	out, err := h.classrooms.ListStudentLinks(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) assignStudent(ctx echo.Context) error {
	var nl classroom.NewStudentLink
	if err := ctx.Bind(&nl); err != nil {
		return err
	}
	if err := nl.Validate(); err != nil {
		return err
	}
	out, err := h.classrooms.AssignStudent(ctx.Request().Context(), nl)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

func (h *handlers) assignStudents(ctx echo.Context) error {
	var nls []classroom.NewStudentLink
	if err := ctx.Bind(&nls); err != nil {
		return err
	}
	out, err := h.classrooms.AssignStudents(ctx.Request().Context(), nls)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, out)
}

func (h *handlers) removeStudentLink(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = h.classrooms.RemoveStudentLink(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
