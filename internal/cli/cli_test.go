package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/rdf-serialize/rdf"
)

const sampleNTriples = `<http://example.com/subject> <http://example.com/predicate> "some text" .
`

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.In = strings.NewReader(stdin)
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.Execute()
	return out.String(), logs.String(), err
}

func TestSerializeStdinToTurtle(t *testing.T) {
	out, _, err := runCLI(t, sampleNTriples)
	require.NoError(t, err)
	assert.Equal(t, "@prefix exa: <http://example.com/>.\n\nexa:subject exa:predicate \"some text\".\n\n", out)
}

func TestSerializeFileToNTriples(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.nt")
	require.NoError(t, os.WriteFile(input, []byte(sampleNTriples), 0o644))

	out, _, err := runCLI(t, "", "-t", "nt", input)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(sampleNTriples), strings.TrimSpace(out))
}

func TestSerializePrefixFlag(t *testing.T) {
	out, _, err := runCLI(t, sampleNTriples, "-p", "ex=http://example.com/")
	require.NoError(t, err)
	assert.Contains(t, out, "@prefix ex: <http://example.com/>.")
	assert.Contains(t, out, "ex:subject ex:predicate")
}

func TestSerializeOutputAndMetricsFiles(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.ttl")
	metrics := filepath.Join(dir, "metrics.prom")

	stdout, _, err := runCLI(t, sampleNTriples, "-o", output, "--metrics-file", metrics)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "exa:subject")

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `rdfserialize_documents_total{format="turtle",outcome="ok"} 1`)
}

func TestSerializeUnsupportedContentType(t *testing.T) {
	_, _, err := runCLI(t, sampleNTriples, "-t", "text/html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestSerializeBadInput(t *testing.T) {
	_, _, err := runCLI(t, "<http://example.com/s> <http://example.com/p> .\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestSerializeGraphFilter(t *testing.T) {
	input := `<http://example.com/a> <http://example.com/p> "in g" <http://example.com/g> .
<http://example.com/b> <http://example.com/p> "default" .
`
	out, _, err := runCLI(t, input, "-t", "nq", "-g", "default")
	require.NoError(t, err)
	assert.Contains(t, out, "<http://example.com/b>")
	assert.NotContains(t, out, "<http://example.com/a>")
}

func TestFormatsCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "CONTENT TYPE")
	assert.Contains(t, out, "application/rdf+xml")
	assert.Contains(t, out, "application/ld+json")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version: dev")
}

func TestGraphTarget(t *testing.T) {
	assert.Nil(t, graphTarget(""))
	assert.Equal(t, "", graphTarget("default").String())
	assert.Equal(t, "<http://example.com/g>", graphTarget("http://example.com/g").String())
}

func TestSerializeSeveralFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.nt")
	second := filepath.Join(dir, "second.nt")
	require.NoError(t, os.WriteFile(first, []byte("_:b <http://example.com/p> \"one\" .\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("_:b <http://example.com/p> \"two\" .\n"), 0o644))

	out, _, err := runCLI(t, "", "-t", "nt", first, second)
	require.NoError(t, err)
	assert.Contains(t, out, "_:b <http://example.com/p> \"one\" .\n")
	assert.Contains(t, out, "_:b_1 <http://example.com/p> \"two\" .\n")
}

func TestMergeGraphRenamesCollidingLabels(t *testing.T) {
	taken := map[string]bool{}
	dst := rdf.NewGraph()

	src := rdf.NewGraph()
	src.Add(rdf.BlankNode{ID: "a"}, rdf.IRI{Value: "http://example.com/p"}, rdf.BlankNode{ID: "a_1"}, nil)
	mergeGraph(dst, src, taken)

	src = rdf.NewGraph()
	src.Add(rdf.BlankNode{ID: "a"}, rdf.IRI{Value: "http://example.com/p"}, rdf.BlankNode{ID: "a_1"}, nil)
	mergeGraph(dst, src, taken)

	sts := dst.Statements()
	require.Len(t, sts, 2)
	assert.Equal(t, rdf.BlankNode{ID: "a"}, sts[0].S)
	assert.Equal(t, rdf.BlankNode{ID: "a_1"}, sts[0].O)
	assert.NotEqual(t, sts[1].S, sts[1].O)
	for _, term := range []rdf.Term{sts[1].S, sts[1].O} {
		assert.NotContains(t, []rdf.Term{rdf.BlankNode{ID: "a"}, rdf.BlankNode{ID: "a_1"}}, term)
	}
}
