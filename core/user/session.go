package user

import (
	"strconv"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// Session is the authenticated user's context. It is created by Service.Login
// and passed explicitly into every service call that needs the acting user;
// there is no ambient auth singleton.
type Session struct {
	User  User
	Token string // raw JWT, when the backend issues one alongside the cookie
}

func (s Session) Authenticated() bool {
	return s.User.ID != 0
}

func (s Session) IsAdmin() bool   { return s.User.IsAdmin() }
func (s Session) IsTeacher() bool { return s.User.IsTeacher() }
func (s Session) IsStudent() bool { return s.User.IsStudent() }

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
}

// ParseClaims decodes the claims out of a backend-issued token without
// verifying the signature; the client has no key and the cookie session is
// the actual authority. The claims only seed display/role state.
func ParseClaims(token string) (*Claims, error) {
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrap(err, "parsing token claims")
	}
	return claims, nil
}

// NewSessionFromClaims builds a Session off decoded token claims.
func NewSessionFromClaims(token string, claims *Claims) Session {
	id, _ := strconv.Atoi(claims.Subject)
	return Session{
		Token: token,
		User: User{
			ID:        id,
			Username:  core.CleanString(claims.Username, true /* lower */),
			FirstName: claims.FirstName,
			LastName:  claims.LastName,
			Role:      claims.Role,
		},
	}
}
