package inspect

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/krogueintel/batchbuffer-logger-all/internal/blackbox"
)

// NewStatCommand returns the "stat" command, summarizing the on-disk files of
// a recording session.
func NewStatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stat <prefix>",
		Short: "Summarize the trace files of a session prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := args[0]
			files, err := blackbox.ListFiles(prefix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintf(out, "no trace files for prefix %q\n", prefix)
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tSIZE\tRECORDS\tOPEN\tSTATE")
			var totalSize int64
			var totalRecords int
			for _, f := range files {
				vs, err := blackbox.VerifyFile(f.Path)
				if err != nil {
					fmt.Fprintf(tw, "%s\t%d\t-\t-\tcorrupt: %v\n", f.Path, f.Size, err)
					continue
				}
				state := "complete"
				if vs.Truncated {
					state = "truncated"
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", f.Path, f.Size, vs.Records, vs.OpenAtEnd, state)
				totalSize += f.Size
				totalRecords += vs.Records
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d files, %d records, %d bytes\n", len(files), totalRecords, totalSize)
			return nil
		},
	}
}
