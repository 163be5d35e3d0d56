package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/rdf-serialize/rdf"
)

// serializeOpts holds the command-line flags of the root command.
type serializeOpts struct {
	contentType string
	base        string
	flags       string
	graph       string
	prefixes    []string
	config      string
	output      string
	metricsFile string
	width       int
	indent      int
}

func (c *CLI) serializeCommand() *cobra.Command {
	var opts serializeOpts

	cmd := &cobra.Command{
		Args: cobra.ArbitraryArgs,
		Example: `  rdfserialize data.nq
  rdfserialize people.nt places.nt -t turtle
  rdfserialize -t application/rdf+xml -b http://example.org/ data.nt -o data.rdf
  cat data.nt | rdfserialize -t jsonld -p ex=http://example.org/ns#`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			inputs := args
			if len(inputs) == 0 {
				inputs = []string{"-"}
			}
			return c.runSerialize(cmd, inputs, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.contentType, "content-type", "t", "text/turtle", "output content type or short name (turtle, n3, nt, nq, rdfxml, jsonld)")
	f.StringVarP(&opts.base, "base", "b", "", "base IRI for relative references")
	f.StringVarP(&opts.flags, "flags", "f", "", "extra serializer flag letters, e.g. \"dr\"")
	f.StringVarP(&opts.graph, "graph", "g", "", "serialize one graph only: an IRI, or \"default\"")
	f.StringArrayVarP(&opts.prefixes, "prefix", "p", nil, "bind a prefix (prefix=iri); repeatable")
	f.StringVarP(&opts.config, "config", "c", "", "TOML or YAML file with serializer defaults")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")
	f.IntVar(&opts.width, "width", 80, "line width of the Turtle and RDF/XML layouts")
	f.IntVar(&opts.indent, "indent", 4, "indent of the Turtle and RDF/XML layouts")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")

	return cmd
}

// resolve merges the config file and the flags the user set explicitly.
func (o *serializeOpts) resolve(cmd *cobra.Command) (*Config, error) {
	cfg := DefaultConfig()
	if o.config != "" {
		loaded, err := LoadConfig(o.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("content-type") || cfg.ContentType == "" {
		cfg.ContentType = o.contentType
	}
	if flags.Changed("base") {
		cfg.Base = o.base
	}
	if flags.Changed("flags") {
		cfg.Flags = o.flags
	}
	if flags.Changed("graph") {
		cfg.Graph = o.graph
	}
	prefixes, err := parsePrefixes(o.prefixes)
	if err != nil {
		return nil, err
	}
	if len(prefixes) > 0 && cfg.Namespaces == nil {
		cfg.Namespaces = make(map[string]string, len(prefixes))
	}
	for p, uri := range prefixes {
		cfg.Namespaces[p] = uri
	}
	return cfg, nil
}

func (c *CLI) runSerialize(cmd *cobra.Command, inputs []string, cfg *Config, opts serializeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	ct, ok := rdf.ParseFormat(cfg.ContentType)
	if !ok {
		return fmt.Errorf("unsupported content type %q (see 'rdfserialize formats')", cfg.ContentType)
	}

	prog := newProgress(logger)
	graph := rdf.NewGraph()
	labels := make(map[string]bool)
	for _, input := range inputs {
		part, err := c.readInput(ctx, input)
		if err != nil {
			return fmt.Errorf("read %s: %w", input, err)
		}
		mergeGraph(graph, part, labels)
		logger.Debug("input loaded", "source", input, "statements", part.Len())
	}

	reg := prometheus.NewRegistry()
	options := []rdf.Option{
		rdf.OptContentType(ct),
		rdf.OptBase(cfg.Base),
		rdf.OptFlags(cfg.Flags),
		rdf.OptNamespaces(cfg.Namespaces),
		rdf.OptLogger(logger),
		rdf.OptMetrics(rdf.NewMetrics(reg)),
		rdf.OptLayout(opts.width, opts.indent),
	}
	out, err := rdf.Serialize(graphTarget(cfg.Graph), graph, options...)
	if err != nil {
		return err
	}

	if err := c.writeOutput(opts.output, out); err != nil {
		return err
	}
	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	prog.done(fmt.Sprintf("Serialized %d statements as %s", graph.Len(), ct))
	return nil
}

func (c *CLI) readInput(ctx context.Context, input string) (*rdf.Graph, error) {
	if input == "-" {
		return rdf.ReadGraph(ctx, c.In)
	}
	file, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return rdf.ReadGraph(ctx, file)
}

// mergeGraph adds the statements of src to dst. Blank node labels are
// scoped to their document, so a label already taken by an earlier input
// is renamed; taken collects the labels of every merged input.
func mergeGraph(dst, src *rdf.Graph, taken map[string]bool) {
	renamed := make(map[string]rdf.Term)
	used := make(map[string]bool)
	relabel := func(t rdf.Term) rdf.Term {
		b, ok := t.(rdf.BlankNode)
		if !ok {
			return t
		}
		if r, ok := renamed[b.ID]; ok {
			return r
		}
		id := b.ID
		for n := 1; taken[id] || used[id]; n++ {
			id = fmt.Sprintf("%s_%d", b.ID, n)
		}
		used[id] = true
		renamed[b.ID] = rdf.BlankNode{ID: id}
		return renamed[b.ID]
	}
	for _, st := range src.Statements() {
		dst.AddStatement(rdf.Statement{S: relabel(st.S), P: st.P, O: relabel(st.O), G: relabel(st.G)})
	}
	for id := range used {
		taken[id] = true
	}
}

// graphTarget maps the --graph value to a Serialize target.
func graphTarget(value string) rdf.Term {
	switch value {
	case "":
		return nil
	case "default":
		return rdf.DefaultGraph{}
	default:
		return rdf.IRI{Value: value}
	}
}

func (c *CLI) writeOutput(path, content string) error {
	if path == "" {
		_, err := io.WriteString(c.Out, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
