package term

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimRelease(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Claim(&buf))
	assert.Equal(t, "\x1b[?1049h\x1b[3J\x1b[?25l", buf.String())

	buf.Reset()
	require.NoError(t, Release(&buf))
	assert.Equal(t, "\x1b[?25h\x1b[2J\x1b[H\x1b[?1049l", buf.String())

	buf.Reset()
	require.NoError(t, Clear(&buf))
	assert.Equal(t, "\x1b[2J\x1b[H", buf.String())
}
