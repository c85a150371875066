package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/progress"
	"github.com/abhisek/hagios/internal/screen/screentest"
)

// workspace writes a content directory and returns the flags pointing the
// CLI at it and at a fresh database.
func workspace(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"HAGIOS_CONTENT", "HAGIOS_DB", "HAGIOS_USER", "HAGIOS_REDIS_ADDR", "HAGIOS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	content := filepath.Join(dir, "content")
	require.NoError(t, os.MkdirAll(content, 0o755))
	files := map[string]string{
		catalog.CatalogDocument:      screentest.Catalog,
		catalog.ContentDocument("1"): screentest.ModuleOne,
		catalog.ContentDocument("2"): screentest.ModuleTwo,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(content, name), []byte(body), 0o644))
	}

	return []string{"--content", content, "--db", filepath.Join(dir, "hagios.db")}
}

func execute(t *testing.T, flags []string, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, flags...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCourseFlow(t *testing.T) {
	flags := workspace(t)

	out, err := execute(t, flags, "", "modules")
	require.NoError(t, err)
	assert.Contains(t, out, "Creation")
	assert.Contains(t, out, "Locked")
	assert.Contains(t, out, "3 modules")

	_, err = execute(t, flags, "", "complete", "1")
	require.ErrorIs(t, err, ErrRequirementsUnmet)

	_, err = execute(t, flags, "", "journal", "set", "1",
		"--answer", "1=God made all things",
		"--answer", "2=I am made in His image",
		"--answer", "3=Let there be light",
		"--answer", "4=Rest on the seventh day",
		"--challenge")
	require.NoError(t, err)

	out, err = execute(t, flags, "A\nb\n", "quiz", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "100% correct")

	out, err = execute(t, flags, "", "journal", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Let there be light")
	assert.Contains(t, out, "Quiz:       100%")

	out, err = execute(t, flags, "", "complete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Module completed!")

	out, err = execute(t, flags, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 3 modules (33%)")

	out, err = execute(t, flags, "", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "1 journals removed")

	out, err = execute(t, flags, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "0 of 3 modules (0%)")
}

func TestUnknownModule(t *testing.T) {
	flags := workspace(t)

	_, err := execute(t, flags, "", "journal", "show", "9")
	assert.ErrorIs(t, err, catalog.ErrUnknownModule)
}

func TestCommandsCheckCatalog(t *testing.T) {
	flags := workspace(t)

	_, err := execute(t, flags, "", "complete", "99")
	assert.ErrorIs(t, err, catalog.ErrUnknownModule)

	_, err = execute(t, flags, "a\n", "quiz", "99")
	assert.ErrorIs(t, err, catalog.ErrUnknownModule)

	_, err = execute(t, flags, "a\n", "quiz", "2")
	assert.ErrorIs(t, err, progress.ErrModuleLocked)

	_, err = execute(t, flags, "", "complete", "3")
	assert.ErrorIs(t, err, progress.ErrModuleLocked)
}

func TestMissingContent(t *testing.T) {
	flags := workspace(t)
	flags[1] = filepath.Join(t.TempDir(), "nowhere")

	_, err := execute(t, flags, "", "modules")
	assert.ErrorIs(t, err, catalog.ErrDataUnavailable)
}

func TestSyncDisabled(t *testing.T) {
	flags := workspace(t)

	_, err := execute(t, flags, "", "sync")
	assert.ErrorIs(t, err, ErrSyncDisabled)
}

func TestThemeCommand(t *testing.T) {
	flags := workspace(t)

	out, err := execute(t, flags, "", "theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme: dark")

	out, err = execute(t, flags, "", "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	_, err = execute(t, flags, "", "theme", "sepia")
	assert.Error(t, err)
	execute(t, flags, "", "theme", "light")
}

func TestParseAnswer(t *testing.T) {
	n, text, err := parseAnswer("2= spaced = text")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, " spaced = text", text)

	for _, bad := range []string{"nope", "0=x", "5=x", "a=x"} {
		_, _, err := parseAnswer(bad)
		assert.Error(t, err, bad)
	}
}
