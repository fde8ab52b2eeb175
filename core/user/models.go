package user

import (
	"time"
)

// Roles, as the backend reports them.
const (
	RoleSystemAdmin = "SYSTEM_ADMIN"
	RoleSchoolAdmin = "SCHOOL_ADMIN"
	RoleTeacher     = "TEACHER"
	RoleStudent     = "STUDENT"
)

var (
	AllRoles = []string{RoleSystemAdmin, RoleSchoolAdmin, RoleTeacher, RoleStudent}

	rolePriorities = map[string]int{
		// Admins: 30 - 21
		RoleSystemAdmin: 30,
		RoleSchoolAdmin: 21,

		// Teachers: 20 - 11
		RoleTeacher: 11,

		// Students: 10 - 1
		RoleStudent: 1,
	}
)

func RolePriority(role string) int {
	return rolePriorities[role]
}

type User struct {
	ID        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	SchoolID  int       `json:"schoolId,omitempty"`
	CreatedAt time.Time `json:"createdAt"` // UTC
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleSystemAdmin || u.Role == RoleSchoolAdmin
}

func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
