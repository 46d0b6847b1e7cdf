package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixedID(t *testing.T) {
	assert.Equal(t, "fd-2002", PrefixedID(PrefixPrimary, "2002"))
	assert.Equal(t, "ol-unknown", PrefixedID(PrefixFallback, ""))
	assert.Equal(t, "ol-unknown", PrefixedID(PrefixFallback, "0"))

	prefix, raw, ok := ParseExternalID("fd-2002")
	assert.True(t, ok)
	assert.Equal(t, PrefixPrimary, prefix)
	assert.Equal(t, "2002", raw)

	_, _, ok = ParseExternalID("2002")
	assert.False(t, ok)
}

func TestKnownID(t *testing.T) {
	assert.True(t, KnownID("ol-40"))
	assert.False(t, KnownID(PrefixedID(PrefixFallback, "")))
	assert.False(t, KnownID("40"))
}

func TestNameOrUnknown(t *testing.T) {
	assert.Equal(t, UnknownName, NameOrUnknown("  "))
	assert.Equal(t, "Bayern", NameOrUnknown("Bayern"))
	assert.Nil(t, OptionalString(""))
	assert.Equal(t, "x", StringValue(OptionalString("x")))
}
