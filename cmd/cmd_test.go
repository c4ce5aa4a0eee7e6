package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag of c and its children to its default so
// runs of the shared command tree do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

// execute runs the CLI against a fresh database in a temp dir.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HISTQUIZ_DB", "")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{
		"--db", filepath.Join(dir, "test.db"),
		"--env-file", filepath.Join(dir, "none.env"),
	}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSettingsSetAndShow(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Amount:     10")
	assert.Contains(t, out, "Difficulty: easy")

	out, err = execute(t, dir, "settings", "set", "--amount", "50", "--difficulty", "hard", "--type", "boolean")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved")

	out, err = execute(t, dir, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Amount:     20")
	assert.Contains(t, out, "Difficulty: hard")
	assert.Contains(t, out, "Type:       True / False")

	// Unchanged flags keep their saved values.
	_, err = execute(t, dir, "settings", "set", "--difficulty", "any")
	require.NoError(t, err)
	out, err = execute(t, dir, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Amount:     20")
	assert.Contains(t, out, "Difficulty: any")
}

func TestSettingsSetRejectsBadDifficulty(t *testing.T) {
	_, err := execute(t, t.TempDir(), "settings", "set", "--difficulty", "brutal")
	assert.Error(t, err)
}

func TestHighScoreShowAndReset(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "highscore")
	require.NoError(t, err)
	assert.Contains(t, out, "High score: 0")

	out, err = execute(t, dir, "highscore", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "High score reset")
}

func TestHistoryEmpty(t *testing.T) {
	out, err := execute(t, t.TempDir(), "history")
	require.NoError(t, err)
	assert.Contains(t, out, "0 sessions")
	assert.Contains(t, out, "No sessions yet.")
}

const previewBody = `{
  "response_code": 0,
  "results": [
    {
      "type": "boolean",
      "difficulty": "medium",
      "category": "History",
      "question": "The Magna Carta was sealed in 1215.",
      "correct_answer": "True",
      "incorrect_answers": ["False"]
    }
  ]
}`

func TestPreviewPrintsQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "23", r.URL.Query().Get("category"))
		assert.Equal(t, "boolean", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(previewBody))
	}))
	defer srv.Close()
	t.Setenv("HISTQUIZ_API_BASE_URL", srv.URL)

	out, err := execute(t, t.TempDir(), "preview", "--amount", "1", "--difficulty", "medium", "--type", "boolean", "--answers")
	require.NoError(t, err)
	assert.Contains(t, out, "1. The Magna Carta was sealed in 1215.")
	assert.Regexp(t, `\* [12]\) True`, out)
	assert.Regexp(t, `  [12]\) False`, out)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "histquiz")
}
