package response

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "response.http")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFromFileCRLF(t *testing.T) {
	path := writeFixture(t, "HTTP/1.1 201 Created\r\nX-Test: yes\r\n\r\nhello")

	status, header, body, err := ParseFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 201, status)
	assert.Equal(t, "yes", header.Get("X-Test"))
	assert.Equal(t, "hello", string(body))
}

func TestParseFromFileLF(t *testing.T) {
	path := writeFixture(t, "HTTP/1.1 404 Not Found\n\nnot here")

	status, _, body, err := ParseFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "not here", string(body))
}

func TestParseFromFileMissingReturnsConfigError(t *testing.T) {
	_, _, _, err := ParseFromFile(filepath.Join(t.TempDir(), "missing.http"))
	assert.Error(t, err)
}

func TestParseFromFileMalformedStatusLine(t *testing.T) {
	path := writeFixture(t, "not-a-status-line\n\nbody")
	_, _, _, err := ParseFromFile(path)
	assert.Error(t, err)
}
