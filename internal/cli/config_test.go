package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "rdfserialize.toml", `
content_type = "application/n-triples"
base = "http://example.org/"
flags = "dr"

[namespaces]
ex = "http://example.org/ns#"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "application/n-triples", cfg.ContentType)
	assert.Equal(t, "http://example.org/", cfg.Base)
	assert.Equal(t, "dr", cfg.Flags)
	assert.Equal(t, map[string]string{"ex": "http://example.org/ns#"}, cfg.Namespaces)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "rdfserialize.yaml", `
graph: default
namespaces:
  ex: http://example.org/ns#
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "text/turtle", cfg.ContentType, "unset fields keep their defaults")
	assert.Equal(t, "default", cfg.Graph)
	assert.Equal(t, "http://example.org/ns#", cfg.Namespaces["ex"])
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = LoadConfig(writeFile(t, "config.json", "{}"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = LoadConfig(writeFile(t, "bad.toml", "content_type = "))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestParsePrefixes(t *testing.T) {
	got, err := parsePrefixes([]string{"ex=http://example.org/", "foaf=http://xmlns.com/foaf/0.1/"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "http://example.org/", got["ex"])

	for _, bad := range []string{"ex", "=http://example.org/", "ex="} {
		_, err := parsePrefixes([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	path := writeFile(t, "rdfserialize.toml", `
content_type = "application/n-triples"

[namespaces]
ex = "http://example.com/"
`)
	out, _, err := runCLI(t, sampleNTriples, "-c", path)
	require.NoError(t, err)
	assert.Equal(t, sampleNTriples, out)

	out, _, err = runCLI(t, sampleNTriples, "-c", path, "-t", "turtle")
	require.NoError(t, err)
	assert.Contains(t, out, "ex:subject ex:predicate \"some text\".")
}
