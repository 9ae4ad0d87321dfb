package pkg

import (
	"context"
	"os"

	"github.com/clarify/clarify-go"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Creds struct {
	Url, IntegrationID, Password string
}

// LoadEnv loads envs/<server>.env into the process environment. Variables
// already set are left untouched.
func LoadEnv(server string) error {
	path := "envs/" + server + ".env"
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	return nil
}

// LoadCreds reads the Clarify credentials from the environment. The password
// may be kept in a file named by CLARIFY_PASSWORD_FILE instead.
func LoadCreds() (*Creds, error) {
	creds := &Creds{
		Url:           os.Getenv("APIURL"),
		IntegrationID: os.Getenv("CLARIFY_INTEGRATION_ID"),
		Password:      os.Getenv("CLARIFY_PASSWORD"),
	}
	if creds.IntegrationID == "" {
		return nil, errors.New("CLARIFY_INTEGRATION_ID is not set")
	}

	if path := os.Getenv("CLARIFY_PASSWORD_FILE"); creds.Password == "" && path != "" {
		password, err := ReadKey(path)
		if err != nil {
			return nil, errors.Wrap(err, "CLARIFY_PASSWORD_FILE")
		}
		creds.Password = password
	}
	return creds, nil
}

func (creds *Creds) Client(ctx context.Context) *clarify.Client {
	c := clarify.Credentials{
		APIURL:      creds.Url,
		Integration: creds.IntegrationID,
		Credentials: clarify.CredentialsAuth{
			Type:         clarify.TypeBasicAuth,
			ClientID:     creds.IntegrationID,
			ClientSecret: creds.Password,
		},
	}
	return c.Client(ctx)
}
