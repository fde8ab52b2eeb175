package main

import (
	"context"
	"log"
	"time"

	stubapi "github.com/trezcool/shule/apps/stubserver/echo"
	"github.com/trezcool/shule/core/classroom"
	"github.com/trezcool/shule/core/user"
	dummyapi "github.com/trezcool/shule/storage/dummy"
)

// A self-contained in-memory backend for local development of the client.
// Seeded with one school, one classroom, a teacher and two students so the
// app has something to show right after login.
func main() {
	db, err := dummyapi.Open()
	errAndDie(err)
	errAndDie(seed(db))

	app := stubapi.NewServer(
		&stubapi.Options{
			Address: ":8165",
			DB:      db,
		},
	)
	app.Start()
}

func seed(db *dummyapi.DB) error {
	db.AddAccount(user.User{
		FirstName: "Asha",
		LastName:  "Mwalimu",
		Username:  "asha",
		Email:     "asha@shule.example",
		Role:      user.RoleTeacher,
		SchoolID:  1,
		CreatedAt: time.Now().UTC(),
	}, "LePassword")
	juma := db.AddAccount(user.User{
		FirstName: "Juma",
		LastName:  "Hassan",
		Username:  "juma",
		Email:     "juma@shule.example",
		Role:      user.RoleStudent,
		SchoolID:  1,
		CreatedAt: time.Now().UTC(),
	}, "LePassword")
	neema := db.AddAccount(user.User{
		FirstName: "Neema",
		LastName:  "Baraka",
		Username:  "neema",
		Email:     "neema@shule.example",
		Role:      user.RoleStudent,
		SchoolID:  1,
		CreatedAt: time.Now().UTC(),
	}, "LePassword")

	cr := db.AddClassroom(classroom.Classroom{
		Name:    "Form 1 Mathematics",
		Grade:   1,
		Subject: &classroom.Ref{ID: 1, Name: "Mathematics"},
		School:  &classroom.Ref{ID: 1, Name: "Shule Academy"},
	})

	_, err := dummyapi.NewClassroomAPI(db).AssignStudents(context.Background(), []classroom.NewStudentLink{
		{StudentID: juma.ID, ClassroomID: cr.ID},
		{StudentID: neema.ID, ClassroomID: cr.ID},
	})
	return err
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
