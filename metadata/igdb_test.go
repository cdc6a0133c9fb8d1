package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIGDBID(t *testing.T) {
	n, err := parseIGDBID("igdb:12345")
	require.NoError(t, err)
	assert.Equal(t, 12345, n)

	for _, bad := range []string{"12345", "igdb:", "igdb:abc", "steam:440"} {
		_, err := parseIGDBID(bad)
		assert.Error(t, err, "id %q", bad)
	}
}
