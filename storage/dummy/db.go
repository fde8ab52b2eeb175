package dummyapi

import (
	"sync"

	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/classroom"
	"github.com/trezcool/shule/core/comment"
	"github.com/trezcool/shule/core/material"
	"github.com/trezcool/shule/core/submission"
	"github.com/trezcool/shule/core/user"
)

// DB is an in-memory stand-in for the backend, used by tests and the stub
// server. It mimics the server's semantics: pk assignment, one submission per
// (student, assignment), and feed rows derived from the other tables.
type DB struct {
	mu sync.RWMutex
	pk int

	users         map[int]*account
	assignments   map[int]*assignment.Assignment
	materials     map[int]*material.Material
	materialFiles map[string][]byte // material file name -> content
	submissions   map[int]*submission.Submission
	fileBlobs     map[int][]byte // submission file ID -> content
	comments      map[int]*comment.Comment
	classrooms    map[int]*classroom.Classroom
	links         map[int]*classroom.StudentLink
}

// account pairs a user with its dummy plaintext password.
type account struct {
	user.User
	Password string
}

func Open() (*DB, error) {
	db := &DB{
		users:         make(map[int]*account),
		assignments:   make(map[int]*assignment.Assignment),
		materials:     make(map[int]*material.Material),
		materialFiles: make(map[string][]byte),
		submissions:   make(map[int]*submission.Submission),
		fileBlobs:     make(map[int][]byte),
		comments:      make(map[int]*comment.Comment),
		classrooms:    make(map[int]*classroom.Classroom),
		links:         make(map[int]*classroom.StudentLink),
	}
	return db, nil
}

// nextPK must be called with db.mu held.
func (db *DB) nextPK() int {
	db.pk++
	return db.pk
}

// AddAccount seeds a login account; fixture helper.
func (db *DB) AddAccount(usr user.User, password string) user.User {
	db.mu.Lock()
	defer db.mu.Unlock()

	if usr.ID == 0 {
		usr.ID = db.nextPK()
	}
	db.users[usr.ID] = &account{User: usr, Password: password}
	return usr
}

// AddAssignment seeds an assignment verbatim, timestamps included; fixture
// helper.
func (db *DB) AddAssignment(a assignment.Assignment) assignment.Assignment {
	db.mu.Lock()
	defer db.mu.Unlock()

	if a.ID == 0 {
		a.ID = db.nextPK()
	}
	db.assignments[a.ID] = &a
	return a
}

// AddMaterial seeds a learning material verbatim; fixture helper.
func (db *DB) AddMaterial(m material.Material) material.Material {
	db.mu.Lock()
	defer db.mu.Unlock()

	if m.ID == 0 {
		m.ID = db.nextPK()
	}
	db.materials[m.ID] = &m
	return m
}

// AddComment seeds a comment or class message verbatim; fixture helper.
func (db *DB) AddComment(c comment.Comment) comment.Comment {
	db.mu.Lock()
	defer db.mu.Unlock()

	if c.ID == 0 {
		c.ID = db.nextPK()
	}
	db.comments[c.ID] = &c
	return c
}

// AddClassroom seeds a classroom; fixture helper.
func (db *DB) AddClassroom(cr classroom.Classroom) classroom.Classroom {
	db.mu.Lock()
	defer db.mu.Unlock()

	if cr.ID == 0 {
		cr.ID = db.nextPK()
	}
	db.classrooms[cr.ID] = &cr
	return cr
}

func (db *DB) userName(id int) string {
	if acc, ok := db.users[id]; ok {
		return acc.FullName()
	}
	return ""
}
