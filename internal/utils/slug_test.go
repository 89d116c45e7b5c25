package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Acme", "acme"},
		{"spaces", "Acme Corp", "acme-corp"},
		{"trim", "  Acme Corp  ", "acme-corp"},
		{"runs collapse", "Acme -- & -- Corp", "acme-corp"},
		{"edge symbols", "!!Acme!!", "acme"},
		{"digits kept", "Team 42", "team-42"},
		{"non ascii", "Żabka Sp. z o.o.", "abka-sp-z-o-o"},
		{"only symbols", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.in))
		})
	}
}

func TestGenerateSlug_Deterministic(t *testing.T) {
	assert.Equal(t, GenerateSlug("My Company"), GenerateSlug("My Company"))
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "acme", SlugCandidate("acme", 0))
	assert.Equal(t, "acme-1", SlugCandidate("acme", 1))
	assert.Equal(t, "acme-2", SlugCandidate("acme", 2))
}

func TestIsReservedSlug(t *testing.T) {
	for _, slug := range []string{"check-instance", "login", "register-instance", "session"} {
		assert.True(t, IsReservedSlug(slug), slug)
	}
	for _, slug := range []string{"acme", "check-instance-1", "login-2", "tasks", ""} {
		assert.False(t, IsReservedSlug(slug), slug)
	}
}
