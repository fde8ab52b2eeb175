package user

import (
	"testing"

	"github.com/dgrijalva/jwt-go"
)

func TestParseClaims(t *testing.T) {
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{Subject: "7"},
		Username:       " Asha ",
		FirstName:      "Asha",
		LastName:       "Mwalimu",
		Role:           RoleTeacher,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("whatever"))
	if err != nil {
		t.Fatalf("signing test token failed: %v", err)
	}

	// the signature is never checked client-side; any key works
	parsed, err := ParseClaims(token)
	if err != nil {
		t.Fatalf("ParseClaims() failed: %v", err)
	}

	sess := NewSessionFromClaims(token, parsed)
	if !sess.Authenticated() {
		t.Error("session off valid claims should be authenticated")
	}
	if sess.User.ID != 7 {
		t.Errorf("User.ID = %d, want 7", sess.User.ID)
	}
	if sess.User.Username != "asha" {
		t.Errorf("Username = %q, want %q", sess.User.Username, "asha")
	}
	if !sess.IsTeacher() {
		t.Error("claims role should carry into the session")
	}
	if sess.Token != token {
		t.Error("raw token should be retained on the session")
	}
}

func TestParseClaims_garbage(t *testing.T) {
	if _, err := ParseClaims("lol.nope"); err == nil {
		t.Error("ParseClaims() should fail on a malformed token")
	}
}
