package user

import (
	"context"
	"errors"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrNotFound             = errors.New("user not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

type (
	// API is the slice of the backend this package talks to.
	API interface {
		// Login authenticates against the backend. The session cookie is
		// retained by the underlying HTTP client; the returned user (and
		// optional token) describe who logged in.
		Login(ctx context.Context, username, password string) (User, string, error)
		Logout(ctx context.Context) error
	}

	Service struct {
		api API
		log core.Logger
	}
)

func NewService(api API, log core.Logger) *Service {
	return &Service{api: api, log: log}
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Username = core.CleanString(c.Username, true /* lower */)
	return core.CheckStruct(c)
}

// Login authenticates and returns the new Session. When the backend issues a
// JWT its claims seed the session; otherwise the returned user payload does.
func (svc *Service) Login(ctx context.Context, creds Credentials) (Session, error) {
	if err := creds.Validate(); err != nil {
		return Session{}, err
	}

	usr, token, err := svc.api.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		if core.IsAPIError(err, 401) || core.IsAPIError(err, 400) {
			return Session{}, ErrAuthenticationFailed
		}
		return Session{}, err
	}

	if token != "" {
		if claims, cErr := ParseClaims(token); cErr == nil {
			sess := NewSessionFromClaims(token, claims)
			if sess.User.ID == 0 {
				sess.User = usr
			}
			return sess, nil
		} else {
			svc.log.Warn("ignoring unparseable session token", cErr)
		}
	}
	return Session{User: usr, Token: token}, nil
}

// Logout clears the server-side session. The local Session is discarded by
// the caller regardless of the outcome.
func (svc *Service) Logout(ctx context.Context) error {
	return svc.api.Logout(ctx)
}
