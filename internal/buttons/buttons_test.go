package buttons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysHas(t *testing.T) {
	chord := Up | TightenBrake

	assert.True(t, chord.Has(Up))
	assert.True(t, chord.Has(TightenBrake))
	assert.True(t, chord.Has(OK|Up))
	assert.False(t, chord.Has(Down))
	assert.False(t, Keys(0).Has(OK))
}

func TestKeysString(t *testing.T) {
	assert.Equal(t, "none", Keys(0).String())
	assert.Equal(t, "ok", OK.String())
	assert.Equal(t, "up+release-brake+bell", (Bell | Up | ReleaseBrake).String())
}

func TestSourceFunc(t *testing.T) {
	var src Source = SourceFunc(func() Keys { return Left })
	assert.Equal(t, Left, src.Poll())
	assert.Equal(t, Keys(0), NoopSource{}.Poll())
}
