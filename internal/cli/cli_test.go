package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auris-notifier/pkg/jwt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootHasCommands(t *testing.T) {
	cmd := newRootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"listen", "relay", "publish", "token"} {
		assert.Contains(t, names, want)
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", testSecret)

	out, err := run(t, "token", "--user", "42")
	require.NoError(t, err)

	userID, err := jwt.New(jwt.Config{SecretKey: testSecret}).ExtractUserID(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "42", userID)
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := run(t, "token", "--user", "42")
	assert.Error(t, err)
}

func TestListenRejectsIncompleteConfig(t *testing.T) {
	t.Setenv("NOTIFIER_USER_ID", "")
	t.Setenv("NOTIFIER_TOKEN", "")

	_, err := run(t, "listen", "--redirect", "https://example.com")
	assert.ErrorContains(t, err, "user id or token is required")

	_, err = run(t, "listen", "--user", "42")
	assert.ErrorContains(t, err, "redirect url is required")
}

func TestListenRejectsRelativeRedirect(t *testing.T) {
	_, err := run(t, "listen", "--user", "42", "--redirect", "/downloads", "--navigate", "print")
	assert.Error(t, err)
}

func TestPublishRequiresFlags(t *testing.T) {
	_, err := run(t, "publish", "--user", "42")
	assert.Error(t, err)
}
