package pkg

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	// KeyFile is resolved relative to the working directory.
	KeyFile = "openai.key"
	KeyEnv  = "OPENAI_API_KEY"
)

// ReadKey returns the contents of path with surrounding whitespace removed.
// A file holding only whitespace yields an empty token and no error.
func ReadKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read key %s", path)
	}
	return strings.TrimSpace(string(data)), nil
}

// LoadKey reads KeyFile and exports it as KeyEnv. The token is returned as
// well so callers can pass it on explicitly.
func LoadKey() (string, error) {
	return LoadKeyInto(KeyFile, KeyEnv)
}

func LoadKeyInto(path, env string) (string, error) {
	key, err := ReadKey(path)
	if err != nil {
		return "", err
	}
	if err = os.Setenv(env, key); err != nil {
		return "", errors.Wrapf(err, "set %s", env)
	}
	return key, nil
}
