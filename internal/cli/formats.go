package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/rdf-serialize/rdf"
)

func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported content types and their default flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CONTENT TYPE\tFORMAT\tFLAGS")
			for _, ct := range rdf.ContentTypes() {
				format, flags, _ := rdf.FormatFor(ct)
				fmt.Fprintf(tw, "%s\t%s\t%q\n", ct, format, flags)
			}
			return tw.Flush()
		},
	}
}
