package inspect

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krogueintel/batchbuffer-logger-all/internal/blackbox"
)

// NewVerifyCommand returns the "verify" command, replaying trace files
// through a block stack and reporting their structural health.
func NewVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>...",
		Short: "Check the block structure of trace files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				vs, err := blackbox.VerifyFile(path)
				if err != nil {
					return fmt.Errorf("verify %s: %w", path, err)
				}
				suffix := ""
				if vs.Truncated {
					suffix = " truncated"
				}
				fmt.Fprintf(out, "%s: %d records (%d begin, %d end, %d value) max_depth=%d open_at_end=%d%s\n",
					path, vs.Records, vs.Begins, vs.Ends, vs.Values, vs.MaxDepth, vs.OpenAtEnd, suffix)
			}
			return nil
		},
	}
}
