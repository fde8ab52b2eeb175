package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
	dummyapi "github.com/trezcool/shule/storage/dummy"
	testutil "github.com/trezcool/shule/tests"
)

func TestService_Login(t *testing.T) {
	db := testutil.OpenDB(t)
	juma := testutil.CreateAccount(t, db, "Juma", "Hassan", "juma", user.RoleStudent, 1)
	svc := user.NewService(dummyapi.NewAuthAPI(db), &testutil.LogRecorder{})
	ctx := context.Background()

	tests := []struct {
		name    string
		creds   user.Credentials
		wantErr error
	}{
		{name: "ok", creds: user.Credentials{Username: "juma", Password: "LePassword"}},
		{name: "username is case-insensitive", creds: user.Credentials{Username: " JUMA ", Password: "LePassword"}},
		{name: "bad password", creds: user.Credentials{Username: "juma", Password: "nope"}, wantErr: user.ErrAuthenticationFailed},
		{name: "unknown user", creds: user.Credentials{Username: "ghost", Password: "LePassword"}, wantErr: user.ErrAuthenticationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := svc.Login(ctx, tt.creds)
			if err != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				assert.True(t, sess.Authenticated())
				assert.True(t, sess.IsStudent())
				assert.Equal(t, juma.ID, sess.User.ID)
			} else {
				assert.False(t, sess.Authenticated())
			}
		})
	}

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, user.Credentials{})
		var vErr *core.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Login() error = %v, want validation error", err)
		}
		assert.Len(t, vErr.Fields, 2)
	})
}
