package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uninter/interpreter-go/pkg/ast"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProgram(t *testing.T) {
	program, err := Load(filepath.Join("..", "..", "testdata", "tuple.rinha.json"))
	require.NoError(t, err)
	assert.Equal(t, "tuple.rinha", program.Name)
	assert.Equal(t, ast.NodeLet, program.Expression.NodeKind())
}

func TestLoadMissingFileIsMalformedInput(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.rinha.json"))
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestLoadInvalidDocumentIsMalformedInput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.rinha.json", `{"expression": {"kind": "Nope"}}`)
	_, err := Load(path)
	require.ErrorIs(t, err, ErrMalformedInput)
	assert.Contains(t, err.Error(), "unknown node kind")
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ManifestFilename, `
name: sample
entry: programs/main.rinha.json
options:
  max-depth: 1000
`)
	manifest, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", manifest.Name)
	assert.Equal(t, 1000, manifest.Options.MaxDepth)

	entry, err := manifest.EntryPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "programs", "main.rinha.json"), entry)
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ManifestFilename, `
name: sample
entrypoint: typo.json
`)
	_, err := LoadManifest(path)
	require.Error(t, err)
}

func TestManifestValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ManifestFilename, `
name: ""
entry: main.rinha
options:
  max-depth: -1
`)
	_, err := LoadManifest(path)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Issues, 3)
}

func TestManifestWithoutEntryHasNoEntryPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ManifestFilename, "name: sample\n")
	manifest, err := LoadManifest(path)
	require.NoError(t, err)

	_, err = manifest.EntryPath()
	require.Error(t, err)
}

func TestFindManifestWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ManifestFilename, "name: sample\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindManifest(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ManifestFilename), found)
}

func TestFindManifestMissing(t *testing.T) {
	_, err := FindManifest(t.TempDir())
	require.ErrorIs(t, err, ErrManifestNotFound)
}
