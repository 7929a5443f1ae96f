package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, Pending, Status(false, false, false))
	assert.Equal(t, Success, Status(true, true, false))
	assert.Equal(t, Failure, Status(true, false, false))

	armed := Status(true, true, true)
	assert.NotEqual(t, Success, armed)
	assert.True(t, armed.IsValid())
	assert.Less(t, armed.DistanceCIE76(Warn), Success.DistanceCIE76(Warn))
}

func TestColorsValid(t *testing.T) {
	for _, c := range []struct {
		name string
		hex  string
	}{
		{"background", Background.Hex()},
		{"success", Success.Hex()},
		{"failure", Failure.Hex()},
		{"pending", Pending.Hex()},
		{"warn", Warn.Hex()},
	} {
		assert.Len(t, c.hex, 7, c.name)
		assert.Equal(t, byte('#'), c.hex[0], c.name)
	}
	assert.NotEqual(t, Success.Hex(), Failure.Hex())
}
