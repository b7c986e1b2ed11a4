package tool

import (
	"log/slog"

	"github.com/twmcp-io/twmcp/internal/config"
	"github.com/twmcp-io/twmcp/internal/twitter"
)

// CredentialSource supplies a credential set at call time.
type CredentialSource func() config.Credentials

// Session builds an authenticated Twitter client for a single invocation.
// Credentials are read fresh on every call and never cached, so a rotated
// token takes effect on the next tool call without a restart.
type Session struct {
	Source  CredentialSource
	Logger  *slog.Logger
	Options []twitter.Option // client overrides, used by tests
}

// Client reads and validates credentials, then constructs a client bound to
// them. Fails with *config.MissingCredentialsError when any secret is empty.
func (s *Session) Client() (*twitter.Client, error) {
	creds := s.Source()
	creds.LogPresence(s.Logger)
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return twitter.New(creds, s.Options...), nil
}
