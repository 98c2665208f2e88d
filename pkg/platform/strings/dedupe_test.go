package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"openid", "email", "openid", "profile", "email"},
			expected: []string{"openid", "email", "profile"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"openid", "", "  ", "email"},
			expected: []string{"openid", "email"},
		},
		{
			name:     "preserves case",
			input:    []string{"Email", "email"},
			expected: []string{"Email", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name      string
		existing  []string
		additions []string
		expected  []string
	}{
		{
			name:      "splits space-joined additions",
			existing:  []string{"openid"},
			additions: []string{"profile email"},
			expected:  []string{"openid", "profile", "email"},
		},
		{
			name:      "no duplicates against existing",
			existing:  []string{"openid", "email"},
			additions: []string{"email openid", "address"},
			expected:  []string{"openid", "email", "address"},
		},
		{
			name:      "nothing to add",
			existing:  []string{"openid"},
			additions: nil,
			expected:  []string{"openid"},
		},
		{
			name:      "empty everything",
			existing:  nil,
			additions: []string{""},
			expected:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Union(tt.existing, tt.additions...))
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		once := Union([]string{"openid"}, "profile email")
		twice := Union(once, "profile email")
		assert.Equal(t, once, twice)
	})

	t.Run("does not modify existing", func(t *testing.T) {
		existing := make([]string, 1, 4)
		existing[0] = "openid"
		_ = Union(existing, "email")
		assert.Equal(t, []string{"openid"}, existing)
	})
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "openid profile", Join([]string{"openid", "profile", "openid"}))
	assert.Equal(t, "", Join(nil))
}
