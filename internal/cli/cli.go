// Package cli implements the rdfserialize command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/rdf-serialize/internal/buildinfo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// In and Out replace stdin and stdout; tests set them to buffers.
	In  io.Reader
	Out io.Writer
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself serializes N-Triples or N-Quads input.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.serializeCommand()
	root.Use = "rdfserialize [files...]"
	root.Short = "rdfserialize converts N-Triples and N-Quads to Turtle, RDF/XML and JSON-LD"
	root.Long = `rdfserialize reads N-Triples or N-Quads documents (files, or stdin when none
are given), merges them into one dataset and writes it as Turtle, N3,
N-Triples, N-Quads, RDF/XML or JSON-LD, abbreviating IRIs with prefixes and
nesting blank nodes where possible.`
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			c.SetLogLevel(LogDebug)
		}
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.formatsCommand())
	root.AddCommand(c.versionCommand())

	return root
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(c.Out, buildinfo.String()+"\n")
			return err
		},
	}
}
