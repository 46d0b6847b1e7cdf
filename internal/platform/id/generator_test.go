package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_NewID(t *testing.T) {
	gen := NewRandomGenerator("req_")

	first := gen.NewID()
	second := gen.NewID()

	assert.True(t, strings.HasPrefix(first, "req_"))
	assert.Len(t, first, len("req_")+24)
	assert.NotEqual(t, first, second)
	assert.True(t, Valid(first))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("5f2c-upstream_gw.1"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("has space"))
	assert.False(t, Valid("line\nbreak"))
	assert.False(t, Valid(strings.Repeat("a", 65)))
}
