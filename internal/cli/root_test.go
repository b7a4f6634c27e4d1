package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/services"
	"github.com/dmitrijs2005/taskkeeper/internal/storage"
)

// stubPasswords makes GetPassword return the given values in order.
func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	saved := readPassword
	t.Cleanup(func() { readPassword = saved })

	i := 0
	readPassword = func(fd int) ([]byte, error) {
		require.Less(t, i, len(passwords), "unexpected password prompt")
		pw := []byte(passwords[i])
		i++
		return pw, nil
	}
}

func runScript(t *testing.T, dataPath, script string, passwords ...string) string {
	t.Helper()
	stubPasswords(t, passwords...)

	store := storage.NewFileStore(dataPath, time.Second)
	repo, err := store.Load()
	require.NoError(t, err)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := services.NewSessionService(repo, store, logger)

	var out bytes.Buffer
	app := newApp(svc, logger, strings.NewReader(script), &out)
	app.Run(context.Background())
	return out.String()
}

func TestRun_RegisterLoginTaskFlow(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.json")

	script := strings.Join([]string{
		"register",
		"alice",
		"login",
		"alice",
		"add",
		"buy milk",
		"add",
		"walk dog",
		"done",
		"1",
		"list",
		"delete",
		"2",
		"logout",
		"exit",
	}, "\n") + "\n"

	out := runScript(t, dataPath, script, "hunter2", "hunter2")

	require.Contains(t, out, "Password saved!")
	require.Contains(t, out, "Login successful")
	require.Contains(t, out, "Task added successfully.")
	require.Contains(t, out, "Task 1 marked as completed.")
	require.Contains(t, out, "buy milk")
	require.Contains(t, out, "Completed")
	require.Contains(t, out, "walk dog")
	require.Contains(t, out, "Task 2 deleted.")
	require.Contains(t, out, "Logged out successfully.")
	require.Contains(t, out, "Bye!")

	// the store file survives the run
	_, err := os.Stat(dataPath)
	require.NoError(t, err)
}

func TestRun_WrongPasswordAndUnknownUser(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.json")

	script := strings.Join([]string{
		"register",
		"alice",
		"login",
		"bob",
		"login",
		"alice",
		"exit",
	}, "\n") + "\n"

	out := runScript(t, dataPath, script, "hunter2", "whatever", "wrong-password")

	require.Contains(t, out, "User with username bob not found. Please try again.")
	require.Contains(t, out, "Wrong password. Please try again.")
}

func TestRun_TaskCommandsRequireLogin(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.json")

	script := strings.Join([]string{
		"add",
		"list",
		"done",
		"delete",
		"logout",
		"exit",
	}, "\n") + "\n"

	out := runScript(t, dataPath, script)

	require.Contains(t, out, "No user is logged in.")
	require.NotContains(t, out, "Enter task ID")
}

func TestRun_DuplicateRegistration(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.json")

	script := strings.Join([]string{
		"register",
		"alice",
		"register",
		"alice",
		"exit",
	}, "\n") + "\n"

	out := runScript(t, dataPath, script, "pw-one", "pw-two")

	require.Contains(t, out, "Username already exists. Please choose a different username and try again.")
}

func TestRun_UnknownCommandAndEOF(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.json")

	// no trailing exit; the loop must stop at EOF
	out := runScript(t, dataPath, "frobnicate\n")

	require.Contains(t, out, "Unknown command: frobnicate")
}

func TestRun_ExitWhileLoggedInFlushesStore(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.json")

	script := strings.Join([]string{
		"register",
		"alice",
		"login",
		"alice",
		"add",
		"buy milk",
		"exit",
	}, "\n") + "\n"

	runScript(t, dataPath, script, "hunter2", "hunter2")

	data, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "buy milk")
}
