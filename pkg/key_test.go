package pkg

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeKeyFile creates KeyFile in a fresh directory and makes it the working
// directory for the rest of the test.
func writeKeyFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, KeyFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Chdir(dir)
	return path
}

func TestReadKey_TrimsWhitespace(t *testing.T) {
	tests := map[string]string{
		"plain":            "sk-test123",
		"trailing newline": "sk-test123\n",
		"crlf":             "sk-test123\r\n",
		"surrounding":      " \t sk-test123 \n\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeKeyFile(t, content)

			key, err := ReadKey(path)

			require.NoError(t, err)
			assert.Equal(t, "sk-test123", key)
		})
	}
}

func TestReadKey_WhitespaceOnly(t *testing.T) {
	path := writeKeyFile(t, " \n\t\n")

	key, err := ReadKey(path)

	require.NoError(t, err)
	assert.Equal(t, "", key)
}

func TestReadKey_Missing(t *testing.T) {
	key, err := ReadKey(filepath.Join(t.TempDir(), "missing.key"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.key")
	assert.Equal(t, "", key)
}

func TestReadKey_Unreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	path := writeKeyFile(t, "sk-test123")
	require.NoError(t, os.Chmod(path, 0))

	_, err := ReadKey(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
}

func TestLoadKey_SetsEnv(t *testing.T) {
	t.Setenv(KeyEnv, "previous")
	writeKeyFile(t, "  sk-test123\n")

	key, err := LoadKey()

	require.NoError(t, err)
	assert.Equal(t, "sk-test123", key)
	assert.Equal(t, "sk-test123", os.Getenv(KeyEnv))
}

func TestLoadKey_Idempotent(t *testing.T) {
	t.Setenv(KeyEnv, "")
	writeKeyFile(t, "sk-test123\n")

	first, err := LoadKey()
	require.NoError(t, err)
	second, err := LoadKey()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "sk-test123", os.Getenv(KeyEnv))
}

func TestLoadKey_MissingFileLeavesEnv(t *testing.T) {
	t.Setenv(KeyEnv, "previous")
	t.Chdir(t.TempDir())

	_, err := LoadKey()

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, "previous", os.Getenv(KeyEnv))
}

func TestLoadKeyInto_CustomEnv(t *testing.T) {
	t.Setenv("CLARIFY_DATER_TEST_KEY", "")
	path := writeKeyFile(t, "secret\n")

	key, err := LoadKeyInto(path, "CLARIFY_DATER_TEST_KEY")

	require.NoError(t, err)
	assert.Equal(t, "secret", key)
	assert.Equal(t, "secret", os.Getenv("CLARIFY_DATER_TEST_KEY"))
}
