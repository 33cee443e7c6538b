package embeddata

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAboutMD(t *testing.T) {
	data, err := ReadAboutMD()
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Pathbot")

	fromFS, err := fs.ReadFile(FS(), "about.md")
	require.NoError(t, err)
	assert.Equal(t, data, fromFS)
}
