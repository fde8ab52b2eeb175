package feed

import (
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core/user"
)

func TestOwnsMessage(t *testing.T) {
	asha := user.Session{User: user.User{ID: 7, Username: "asha"}}

	tests := []struct {
		name string
		item Item
		want bool
	}{
		{
			name: "author id match",
			item: Item{Type: TypeMessage, CreatedByID: null.IntFrom(7), CreatedBy: "Someone Else"},
			want: true,
		},
		{
			name: "author id mismatch wins over matching name",
			item: Item{Type: TypeMessage, CreatedByID: null.IntFrom(8), CreatedBy: "asha"},
			want: false,
		},
		{
			name: "no author id, normalized name matches",
			item: Item{Type: TypeMessage, CreatedBy: " A SHA "},
			want: true,
		},
		{
			name: "no author id, name differs",
			item: Item{Type: TypeMessage, CreatedBy: "neema"},
			want: false,
		},
		{
			name: "no author id, empty name never matches",
			item: Item{Type: TypeMessage, CreatedBy: "   "},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ownsMessage(tt.item, asha); got != tt.want {
				t.Errorf("ownsMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeAuthor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Asha Mwalimu", "ashamwalimu"},
		{"  ASHA\tMwalimu \n", "ashamwalimu"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := normalizeAuthor(tt.in); got != tt.want {
			t.Errorf("normalizeAuthor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
