package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitbook/fitbook/internal/errors"
)

func TestTokenize_NoPrefixes(t *testing.T) {
	am := Tokenize("  some random string /t tag with leading space  ", PrefixTag)

	assert.Equal(t, "  some random string /t tag with leading space  ", am.Preamble())
	assert.False(t, am.Has(PrefixTag))
	assert.Empty(t, am.AllValues(PrefixTag))
	_, ok := am.Value(PrefixTag)
	assert.False(t, ok)
}

func TestTokenize_PreambleAndValuesUntrimmed(t *testing.T) {
	am := Tokenize(" 1 n/ John Doe  p/123 ", PrefixName, PrefixPhone)

	assert.Equal(t, " 1 ", am.Preamble())
	v, _ := am.Value(PrefixName)
	assert.Equal(t, " John Doe  ", v)
	v, _ = am.Value(PrefixPhone)
	assert.Equal(t, "123 ", v)
}

func TestTokenize_RepeatedPrefix(t *testing.T) {
	am := Tokenize(" t/friends t/gym t/", PrefixTag)

	assert.Equal(t, []string{"friends ", "gym ", ""}, am.AllValues(PrefixTag))
	last, _ := am.Value(PrefixTag)
	assert.Equal(t, "", last)
}

func TestTokenize_PrefixMustFollowWhitespace(t *testing.T) {
	am := Tokenize(" n/Ann nt/likes t/ennis rt/30", PrefixName, PrefixNote, PrefixTag, PrefixRest)

	v, _ := am.Value(PrefixName)
	assert.Equal(t, "Ann ", v)
	v, _ = am.Value(PrefixNote)
	assert.Equal(t, "likes ", v)
	v, _ = am.Value(PrefixTag)
	assert.Equal(t, "ennis ", v)
	v, _ = am.Value(PrefixRest)
	assert.Equal(t, "30", v)
	assert.Len(t, am.AllValues(PrefixTag), 1, "t/ inside nt/ and rt/ is not a prefix")
}

func TestTokenize_PrefixInsideValueIgnored(t *testing.T) {
	am := Tokenize(" a/Blk 2/3 street e/x@y.com", PrefixAddress, PrefixEmail)

	v, _ := am.Value(PrefixAddress)
	assert.Equal(t, "Blk 2/3 street ", v)
}

func TestTokenize_PrefixAtStart(t *testing.T) {
	am := Tokenize("/all", PrefixAll)
	assert.True(t, am.Has(PrefixAll))
	assert.Equal(t, "", am.Preamble())
}

func TestVerifyNoDuplicates(t *testing.T) {
	am := Tokenize(" n/a n/b p/1 t/x t/y", PrefixName, PrefixPhone, PrefixTag)

	err := am.VerifyNoDuplicates(PrefixName, PrefixPhone)
	assert.True(t, errors.Is(err, errors.ErrDuplicateField))
	assert.NoError(t, am.VerifyNoDuplicates(PrefixPhone))
}
