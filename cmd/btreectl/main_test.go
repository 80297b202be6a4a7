package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	btree "github.com/andjam/kvbtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(strings.NewReader(stdin), &out, &errOut)
	err := app.Run(append([]string{"btreectl"}, args...))
	return out.String(), err
}

const scenarioScript = `# degree 3 walkthrough
set 10 ten
set 20 twenty
set 5 five
set 6 six
set 12 twelve
set 30 thirty
set 7 seven
set 17 seventeen

get 17
get 99
unset 20
unset 5
unset 5
traverse
traverse plr
stats
verify
`

func TestRunScript(t *testing.T) {
	out, err := runApp(t, scenarioScript, "--keys", "int", "--check", "run")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"seventeen",
		"(absent)",
		"error: unset 5: btree: key not found",
		"6 7 10 12 17 30",
		"10 17 6 7 12 30",
		"len=6 height=2 splits=4 merges=2 rotations=0/0 grows=2 shrinks=1",
		"ok",
	}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestRunScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.txt")
	require.NoError(t, os.WriteFile(path, []byte("set b 2\nset a 1 and more\nget a\ntraverse lrp\n"), 0666))

	out, err := runApp(t, "", "--degree", "4", "run", path)
	require.NoError(t, err)
	assert.Equal(t, "1 and more\na b\n", out)
}

func TestRunScriptLexicalOrder(t *testing.T) {
	out, err := runApp(t, "set 10 x\nset 9 y\nset 100 z\ntraverse\n", "run", "-")
	require.NoError(t, err)
	assert.Equal(t, "10 100 9\n", out)
}

func TestRunScriptErrors(t *testing.T) {
	for script, want := range map[string]string{
		"set 1 a\nfrobnicate\n": "line 2",
		"set 1\n":               "usage: set",
		"traverse rlp\n":        "unknown traversal order",
		"set x 1\n":             "not an integer",
	} {
		_, err := runApp(t, script, "--keys", "int", "run")
		require.Error(t, err, script)
		assert.Contains(t, err.Error(), want, script)
	}
}

func TestInvalidDegree(t *testing.T) {
	_, err := runApp(t, "", "--degree", "2", "run")
	assert.ErrorIs(t, err, btree.ErrInvalidDegree)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runApp(t, "", "--log-level", "loud", "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestPrintStatement(t *testing.T) {
	out, err := runApp(t, "set 1 a\nset 2 b\nset 3 c\nprint\nclear\nprint\n", "--keys", "int", "run")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "(2)\n"), out)
	assert.Contains(t, out, "(1)")
	assert.Contains(t, out, "(3)")
	assert.Contains(t, out, "()")
}

func TestDemo(t *testing.T) {
	out, err := runApp(t, "", "--check", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, `set "Shihira" 19`)
	assert.Contains(t, out, "len=11 ")
}

func TestFill(t *testing.T) {
	out, err := runApp(t, "", "--degree", "5", "--keys", "int", "fill", "--count", "300", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "len=")

	again, err := runApp(t, "", "--degree", "5", "--keys", "int", "fill", "--count", "300", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestKeyOrder(t *testing.T) {
	numeric := keyOrder{numeric: true}
	assert.Negative(t, numeric.compare("9", "10"))
	assert.Positive(t, numeric.compare("-1", "-2"))
	assert.Zero(t, numeric.compare("007", "7"))
	assert.Positive(t, keyOrder{}.compare("9", "10"))

	_, err := parseKeyOrder("float")
	assert.Error(t, err)
}
