package inspect

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/krogueintel/batchbuffer-logger-all/internal/blackbox"
)

// NewDumpCommand returns the "dump" command, printing the records of trace
// files one per line. Payloads stay opaque; only their size (and optionally a
// hex preview) is shown.
func NewDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>...",
		Short: "Print the records of one or more trace files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, _ := cmd.Flags().GetString("filter")
			asJSON, _ := cmd.Flags().GetBool("json")
			hexBytes, _ := cmd.Flags().GetInt("hex")
			filter, err := newRecordFilter(expr)
			if err != nil {
				return fmt.Errorf("invalid --filter: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, path := range args {
				if err := dumpFile(out, path, filter, asJSON, hexBytes); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().String("filter", "", "CEL expression selecting records (vars: kind, name, size, depth, index, file)")
	cmd.Flags().Bool("json", false, "print records as NDJSON")
	cmd.Flags().Int("hex", 0, "include up to N payload bytes as hex")
	return cmd
}

type dumpRecord struct {
	File  string `json:"file"`
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Depth int    `json:"depth"`
	Name  string `json:"name,omitempty"`
	Size  int    `json:"size"`
	Hex   string `json:"hex,omitempty"`
}

func dumpFile(w io.Writer, path string, filter recordFilter, asJSON bool, hexBytes int) error {
	enc := json.NewEncoder(w)
	depth := 0
	index := 0
	st, err := blackbox.ScanFile(path, func(rec blackbox.Record) error {
		// report block ends at the depth of the block they close
		d := depth
		switch rec.Kind {
		case blackbox.KindBlockBegin:
			depth++
		case blackbox.KindBlockEnd:
			if depth > 0 {
				depth--
			}
			d = depth
		}
		defer func() { index++ }()
		if !filter.Eval(path, index, d, rec) {
			return nil
		}
		dr := dumpRecord{
			File:  path,
			Index: index,
			Kind:  rec.Kind.String(),
			Depth: d,
			Name:  string(rec.Name),
			Size:  len(rec.Value),
		}
		if hexBytes > 0 && len(rec.Value) > 0 {
			n := len(rec.Value)
			if n > hexBytes {
				n = hexBytes
			}
			dr.Hex = hex.EncodeToString(rec.Value[:n])
		}
		if asJSON {
			return enc.Encode(dr)
		}
		if _, err := fmt.Fprintf(w, "%s#%d %s depth=%d name=%q size=%d", dr.File, dr.Index, dr.Kind, dr.Depth, dr.Name, dr.Size); err != nil {
			return err
		}
		if dr.Hex != "" {
			if _, err := fmt.Fprintf(w, " hex=%s", dr.Hex); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("dump %s: %w", path, err)
	}
	if st.Truncated {
		fmt.Fprintf(w, "# %s: truncated tail after %d complete records\n", path, st.Records)
	}
	return nil
}
