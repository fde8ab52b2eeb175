package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/classroom"
	"github.com/trezcool/shule/core/comment"
	"github.com/trezcool/shule/core/feed"
	"github.com/trezcool/shule/core/material"
	"github.com/trezcool/shule/core/submission"
	"github.com/trezcool/shule/core/user"
	downloadsvc "github.com/trezcool/shule/services/download"
	logsvc "github.com/trezcool/shule/services/logger"
	restapi "github.com/trezcool/shule/storage/rest"
)

// app bundles the client services around one backend connection and one
// login session.
type app struct {
	log core.Logger

	Users       *user.Service
	Feed        *feed.Service
	Assignments *assignment.Service
	Materials   *material.Service
	Submissions *submission.Service
	Comments    *comment.Service
	Classrooms  *classroom.Service
}

func newApp(conf *core.Config) (*app, error) {
	var logger core.Logger
	if conf.Debug || conf.TestMode {
		logger = logsvc.NewConsoleLogger(nil)
	} else {
		logger = logsvc.NewRollbarLogger(log.New(os.Stderr, "", log.LstdFlags), conf)
	}

	client, err := restapi.NewClient(conf)
	if err != nil {
		return nil, err
	}

	feedSvc := feed.NewService(restapi.NewFeedAPI(client))
	saver := downloadsvc.NewFileSystemSaver(conf)
	return &app{
		log:         logger,
		Users:       user.NewService(restapi.NewAuthAPI(client), logger),
		Feed:        feedSvc,
		Assignments: assignment.NewService(restapi.NewAssignmentAPI(client), feedSvc),
		Materials:   material.NewService(restapi.NewMaterialAPI(client), feedSvc, saver, logger),
		Submissions: submission.NewService(restapi.NewSubmissionAPI(client), saver, logger),
		Comments:    comment.NewService(restapi.NewCommentAPI(client), feedSvc, logger),
		Classrooms:  classroom.NewService(restapi.NewClassroomAPI(client)),
	}, nil
}

// a small smoke CLI: log in and print a classroom's feed.
func main() {
	var (
		username    = flag.String("username", "", "login username")
		password    = flag.String("password", "", "login password")
		classroomID = flag.Int("classroom", 0, "classroom to show")
		tab         = flag.String("tab", "", "feed tab (assignment|material|message)")
	)
	flag.Parse()

	a, err := newApp(core.Conf)
	errAndDie(err)

	ctx := context.Background()
	sess, err := a.Users.Login(ctx, user.Credentials{Username: *username, Password: *password})
	errAndDie(err)
	defer a.Users.Logout(ctx) //nolint:errcheck

	fmt.Printf("logged in as %s (%s)\n", sess.User.FullName(), sess.User.Role)
	if *classroomID == 0 {
		return
	}

	items, err := a.Feed.Build(ctx, sess, *classroomID, feed.Tab(*tab))
	errAndDie(err)
	for _, it := range items {
		fmt.Printf("%-12s %-25s %s\n", it.Type, it.CreatedAt.Format("2006-01-02 15:04"), it.Body())
	}
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
