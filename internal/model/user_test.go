package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want string
	}{
		{name: "full name wins", user: &User{Name: "Ada Lovelace", Email: "ada@example.com"}, want: "Ada Lovelace"},
		{name: "email fallback", user: &User{Email: "ada@example.com"}, want: "ada@example.com"},
		{name: "generic fallback", user: &User{}, want: "Member"},
		{name: "nil user", user: nil, want: "Member"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}
