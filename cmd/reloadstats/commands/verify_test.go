package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "verify", "--trials", "500", "--seed", "42")
	require.NoError(t, err)

	for _, id := range []string{"P1", "P2", "P3"} {
		assert.Contains(t, out, id)
	}

	assert.Equal(t, 3, strings.Count(out, "PASS"))
	assert.NotContains(t, out, "FAIL")
	assert.Contains(t, out, "500 trials")
}
