package random

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringUsesAlphabet(t *testing.T) {
	r := New()
	s := r.String(32, "AB")

	assert.Len(t, s, 32)
	assert.Empty(t, strings.Trim(s, "AB"))
}

func TestStringDegenerateInputs(t *testing.T) {
	r := New()

	assert.Empty(t, r.String(0, "ABC"))
	assert.Empty(t, r.String(5, ""))
}

func TestUUIDIsUniqueAndParses(t *testing.T) {
	r := New()
	seen := make(map[string]bool)
	for range 100 {
		id := r.UUID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate uuid %s", id)
		seen[id] = true
	}
}
