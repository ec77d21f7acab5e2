package cutgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTiebreakHashDeterministic(t *testing.T) {
	a := tiebreakHash(7, 3)
	b := tiebreakHash(7, 3)
	assert.Equal(t, a, b)
}

func TestTiebreakHashVariesWithInputs(t *testing.T) {
	base := tiebreakHash(1, 0)
	assert.NotEqual(t, base, tiebreakHash(2, 0))
	assert.NotEqual(t, base, tiebreakHash(1, 1))
}
