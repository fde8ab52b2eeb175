package dummyapi

import (
	"context"
	"net/http"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

type authAPI struct {
	db *DB
}

var _ user.API = (*authAPI)(nil) // interface compliance check

func NewAuthAPI(db *DB) user.API {
	return &authAPI{db: db}
}

func (api *authAPI) Login(_ context.Context, username, password string) (user.User, string, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	for _, acc := range api.db.users {
		if acc.Username == username && acc.Password == password {
			return acc.User, "", nil
		}
	}
	return user.User{}, "", core.NewAPIError(http.StatusUnauthorized, "bad credentials")
}

func (api *authAPI) Logout(_ context.Context) error {
	return nil
}
