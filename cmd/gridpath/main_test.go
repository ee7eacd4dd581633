package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/fixture"
)

// writeFixtures saves a 10x10 grid walled at x=5 except y=5 and the given
// cases, returning their paths.
func writeFixtures(t *testing.T, cases []core.Case) (gridPath, casesPath string) {
	t.Helper()
	g := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)
	for y := 0; y < g.Height; y++ {
		if y != 5 {
			g.Set(5, y, false)
		}
	}
	dir := t.TempDir()
	gridPath = filepath.Join(dir, "grid.txt")
	casesPath = filepath.Join(dir, "data.txt")
	require.NoError(t, fixture.SaveGrid(gridPath, g))
	require.NoError(t, fixture.SaveCases(casesPath, cases))
	return gridPath, casesPath
}

func TestCheck(t *testing.T) {
	gridPath, casesPath := writeFixtures(t, []core.Case{
		{Query: core.NewQuery(0, 0, 9, 0), Expected: 19},
		{Query: core.NewQuery(0, 0, 5, 0), Expected: core.NoPath},
	})

	var stdout, stderr bytes.Buffer
	code := run([]string{"check", "-grid", gridPath, "-cases", casesPath, "-log-level", "error"}, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t,
		"OK : (0 0) => (9 0) parcours 19\nOK : (0 0) => (5 0) parcours -1\n",
		stdout.String())
}

func TestCheckMismatchExitsOne(t *testing.T) {
	gridPath, casesPath := writeFixtures(t, []core.Case{
		{Query: core.NewQuery(0, 0, 9, 0), Expected: 9},
	})

	var stdout, stderr bytes.Buffer
	code := run([]string{"check", "-grid", gridPath, "-cases", casesPath, "-log-level", "error",
		"-cache", filepath.Join(t.TempDir(), "cache")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Equal(t, "ERROR : (0 0) => (9 0) should be 9, computed 19\n", stdout.String())
}

func TestCheckMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"check", "-grid", filepath.Join(t.TempDir(), "none.txt"), "-log-level", "error"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "none.txt")
	assert.Empty(t, stdout.String())
}

func TestCheckInvalidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"check", "-width", "0"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "invalid grid size")
}

func TestLen(t *testing.T) {
	gridPath, _ := writeFixtures(t, nil)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"0", "0", "9", "0"}, "19\n"},
		{[]string{"0", "0", "5", "0"}, "-1\n"},
		{[]string{"3", "3", "3", "3"}, "0\n"},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		args := append([]string{"len", "-grid", gridPath}, tt.args...)
		require.Equal(t, 0, run(args, &stdout, &stderr), stderr.String())
		assert.Equal(t, tt.want, stdout.String(), strings.Join(tt.args, " "))
	}
}

func TestLenBadArguments(t *testing.T) {
	gridPath, _ := writeFixtures(t, nil)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"len", "-grid", gridPath, "0", "0", "9"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "expected 4 coordinates")

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"len", "-grid", gridPath, "0", "0", "x", "0"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `"x" is not an integer`)

	stderr.Reset()
	assert.Equal(t, 1, run([]string{"len", "-grid", gridPath, "0", "0", "10", "0"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "out of grid bounds")
}

func TestRender(t *testing.T) {
	gridPath, _ := writeFixtures(t, nil)
	out := filepath.Join(t.TempDir(), "search.png")

	var stdout, stderr bytes.Buffer
	code := run([]string{"render", "-grid", gridPath, "-out", out, "-scale", "4", "0", "0", "9", "0"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Reached")
	assert.Contains(t, stdout.String(), "length 19")

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestUnknownCommandSuggests(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"chek", `Did you mean "check"?`},
		{"rendr", `Did you mean "render"?`},
		{"lenght", `Did you mean "len"?`},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 2, run([]string{tt.name}, &stdout, &stderr))
		assert.Contains(t, stderr.String(), tt.want, tt.name)
	}

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"zzz"}, &stdout, &stderr))
	assert.NotContains(t, stderr.String(), "Did you mean")
}
