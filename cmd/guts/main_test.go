package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/guts/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaDoc = `
kinds:
  - name: Duration
    tag: duration
    properties:
      - {name: unit, type: string, optional: true, xmlstyle: attribute}
      - {name: value, type: float, xmlstyle: content}
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.yaml"), []byte(schemaDoc), 0644))
	return dir
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "guts version "))
}

func TestValidateCmd(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "d.xml"), []byte(`<duration>1</duration>`), 0644))

	out, err := run(t, "", "validate", "-s", "schema.yaml", "d.xml")
	require.NoError(t, err)
	assert.Contains(t, out, "d.xml (Duration)")

	out, err = run(t, "!Duration\nunit: s\n", "validate", "-s", "schema.yaml", "-f", "yaml", "-")
	assert.ErrorIs(t, err, cli.ErrFailed)
	assert.Contains(t, out, "missing required property")
}

func TestConvertCmd(t *testing.T) {
	setup(t)

	out, err := run(t, "<duration unit=\"s\">2</duration>", "convert", "-s", "schema.yaml", "--from", "xml", "--to", "yaml", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "!Duration")
	assert.Contains(t, out, "value: 2.0")

	_, err = run(t, "", "convert", "-s", "schema.yaml", "x.yaml")
	assert.Error(t, err, "--to is required")
}

func TestKindsCmd_ConfigFile(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guts.yaml"), []byte("schemas: [schema.yaml]\n"), 0644))

	out, err := run(t, "", "kinds", "-f", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, `name = "Duration"`)
}

func TestDescribeCmd(t *testing.T) {
	setup(t)

	out, err := run(t, "", "describe", "-s", "schema.yaml", "Duration")
	require.NoError(t, err)
	assert.Contains(t, out, "# Duration")
	assert.Contains(t, out, "| value | `float` | yes |")
}

func TestGraphCmd(t *testing.T) {
	setup(t)

	out, err := run(t, "", "graph", "-s", "schema.yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "Duration[")
}
