package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carcandyx/baby-steps-client/client"
	"github.com/Carcandyx/baby-steps-client/internal/fakebackend"
)

type cli struct {
	t           *testing.T
	srv         *fakebackend.Server
	sessionFile string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	srv := fakebackend.New()
	t.Cleanup(srv.Close)
	srv.AddUserWithID("u1", "Ana", "Lee", "a@b.com", "Secret1!")
	return &cli{t: t, srv: srv, sessionFile: filepath.Join(t.TempDir(), "session.json")}
}

func (c *cli) run(args ...string) (string, string, error) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--api-url", c.srv.URL, "--session-file", c.sessionFile}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, stderr, err := c.run(args...)
	require.NoError(c.t, err, "babyctl %s\nstderr: %s", strings.Join(args, " "), stderr)
	return out
}

// createdID extracts the ID from "<Kind> created: <id> - <name>".
func createdID(t *testing.T, out string) string {
	t.Helper()
	_, rest, ok := strings.Cut(out, "created: ")
	require.True(t, ok, "unexpected output %q", out)
	return strings.Fields(rest)[0]
}

func TestCLI_BabyAndTaskWorkflow(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("login", "--email", "a@b.com", "--password", "Secret1!")
	assert.Contains(t, out, "Logged in as Ana Lee <a@b.com>")

	out = c.mustRun("whoami")
	assert.Contains(t, out, "[AL] Ana Lee <a@b.com> id=u1")

	out = c.mustRun("babies", "list")
	assert.Contains(t, out, "No babies yet")

	babyID := createdID(t, c.mustRun("babies", "create", "--name", "Mia", "--birth-date", "2024-01-15", "--gender", "female", "--weight", "3.1kg"))

	out = c.mustRun("babies", "list")
	assert.Contains(t, out, babyID)
	assert.Contains(t, out, "Mia")
	assert.Contains(t, out, "FEMALE")

	out = c.mustRun("babies", "get", babyID)
	assert.Contains(t, out, "Born:     2024-01-15")
	assert.Contains(t, out, "Weight:   3.1kg")

	taskID := createdID(t, c.mustRun("tasks", "create", "--baby-id", babyID, "--title", "Vaccine", "--description", "6 month shots", "--deadline", "2024-07-15"))
	c.mustRun("tasks", "create", "--baby-id", babyID, "--title", "Bath", "--deadline", "2024-07-16")

	out = c.mustRun("tasks", "list", "--baby-id", babyID, "--status", "pending")
	assert.Contains(t, out, "Vaccine")
	assert.Contains(t, out, "Bath")

	out = c.mustRun("tasks", "list", "--search", "shots")
	assert.Contains(t, out, "Vaccine")
	assert.NotContains(t, out, "Bath")

	out = c.mustRun("tasks", "list", "--due", "2024-07-16")
	assert.Contains(t, out, "Bath")
	assert.NotContains(t, out, "Vaccine")

	out = c.mustRun("tasks", "complete", taskID, "--baby-id", babyID)
	assert.Contains(t, out, "Task "+taskID+" is completed")

	out = c.mustRun("tasks", "list", "--status", "completed")
	assert.Contains(t, out, "Vaccine")
	assert.NotContains(t, out, "Bath")

	out = c.mustRun("tasks", "complete", taskID, "--baby-id", babyID, "--undo")
	assert.Contains(t, out, "is pending")

	out = c.mustRun("calendar", "--month", "2024-07", "--baby-id", babyID)
	assert.Contains(t, out, "July 2024")
	assert.Contains(t, out, "15[1]")
	assert.Contains(t, out, "16[1]")

	out = c.mustRun("babies", "delete", babyID)
	assert.Contains(t, out, "Baby deleted: "+babyID)

	out = c.mustRun("logout")
	assert.Contains(t, out, "Logged out")
	_, _, err := c.run("whoami")
	assert.EqualError(t, err, "not logged in")
}

func TestCLI_NotLoggedInMakesNoRequests(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.run("babies", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrMissingToken)
	assert.Zero(t, c.srv.Requests())
}

func TestCLI_ExpiredSession(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "--email", "a@b.com", "--password", "Secret1!")

	c.srv.RevokeTokens()
	_, stderr, err := c.run("tasks", "list")
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.Contains(t, stderr, "Session expired")

	_, _, err = c.run("whoami")
	assert.EqualError(t, err, "not logged in")
}

func TestCLI_DeleteUnknownBaby(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "--email", "a@b.com", "--password", "Secret1!")

	_, _, err := c.run("babies", "delete", "x")
	ce, ok := client.AsClientError(err)
	require.True(t, ok, "expected ClientError, got %v", err)
	assert.Equal(t, 404, ce.Status)
	assert.Equal(t, "not_found", ce.Code)
	assert.Equal(t, "Baby not found", ce.Message)
}

func TestCLI_RejectsBadInputLocally(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "--email", "a@b.com", "--password", "Secret1!")
	before := c.srv.Requests()

	_, _, err := c.run("babies", "create", "--name", "Mia", "--birth-date", "2024-01-15", "--gender", "other")
	assert.ErrorContains(t, err, "--gender")
	_, _, err = c.run("babies", "create", "--name", "Mia", "--birth-date", "15/01/2024", "--gender", "MALE")
	assert.ErrorContains(t, err, "--birth-date")
	_, _, err = c.run("tasks", "list", "--status", "later")
	assert.ErrorContains(t, err, "unknown task status")
	_, _, err = c.run("calendar", "--month", "July")
	assert.ErrorContains(t, err, "--month")

	assert.Equal(t, before, c.srv.Requests())
}

func TestCLI_PrintsMetrics(t *testing.T) {
	c := newCLI(t)
	_, stderr, err := c.run("--metrics", "login", "--email", "a@b.com", "--password", "Secret1!")
	require.NoError(t, err)
	assert.Contains(t, stderr, "babysteps_client_requests_total")
	assert.Contains(t, stderr, "babysteps_client_session_invalidations_total")
}

func TestRun_LogsFailureWithStack(t *testing.T) {
	c := newCLI(t)
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"--api-url", c.srv.URL, "--session-file", c.sessionFile, "babies", "list"})

	assert.Equal(t, 1, run(root))
	assert.Contains(t, stderr.String(), "command failed")
	assert.Contains(t, stderr.String(), "missing_token")
	assert.Contains(t, stderr.String(), "stack=")

	root = NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"--api-url", c.srv.URL, "--session-file", c.sessionFile, "logout"})
	assert.Equal(t, 0, run(root))
}
