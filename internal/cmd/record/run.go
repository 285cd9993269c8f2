package record

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krogueintel/batchbuffer-logger-all/internal/blackbox"
	"github.com/krogueintel/batchbuffer-logger-all/internal/config"
	"github.com/krogueintel/batchbuffer-logger-all/pkg/log"
)

// New returns the "record" command, driving a trace session from a
// line-oriented event script on stdin. It exists to exercise the engine and
// to generate fixtures for the inspect commands; real recordings come from
// the interception layer, not this CLI.
func New(cfg config.Config, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a trace session from an event script on stdin",
		Long: `Record reads one directive per line from stdin and drives a trace session:

  begin <name> [value]   open a block
  end                    close the innermost block
  value <name> [value]   record a standalone value
  submit                 submission begin
  endsubmit              submission end

Lines starting with # are comments. The session is closed at EOF.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, _ := cmd.Flags().GetString("prefix")
			maxSize, _ := cmd.Flags().GetInt64("max-file-size")
			maxSubs, _ := cmd.Flags().GetInt("max-submissions")
			keep, _ := cmd.Flags().GetInt("keep")
			s, err := blackbox.Open(blackbox.Options{
				Prefix:                prefix,
				MaxFileSize:           maxSize,
				MaxSubmissionsPerFile: maxSubs,
				MaxRetainedFiles:      keep,
				Logger:                logger,
			})
			if err != nil {
				return err
			}
			if err := run(cmd.InOrStdin(), s); err != nil {
				_ = s.Close()
				return err
			}
			return s.Close()
		},
	}
	cmd.Flags().String("prefix", cfg.FilenamePrefix, "filename prefix for trace files")
	cmd.Flags().Int64("max-file-size", cfg.MaxFileSizeBytes, "rotate once the file exceeds this many bytes (0 = unlimited)")
	cmd.Flags().Int("max-submissions", cfg.MaxSubmissionsPerFile, "rotate after this many submissions per file (0 = unlimited)")
	cmd.Flags().Int("keep", cfg.MaxRetainedFiles, "retention mode: keep only the N most recent per-submission files")
	return cmd
}

func run(in io.Reader, s *blackbox.Session) error {
	sc := bufio.NewScanner(in)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		var err error
		switch fields[0] {
		case "begin":
			err = s.BeginBlock(arg(fields, 1), arg(fields, 2))
		case "end":
			err = s.EndBlock()
		case "value":
			err = s.Value(arg(fields, 1), arg(fields, 2))
		case "submit":
			err = s.SubmissionBegin()
		case "endsubmit":
			err = s.SubmissionEnd()
		default:
			return fmt.Errorf("line %d: unknown directive %q", line, fields[0])
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func arg(fields []string, i int) []byte {
	if i >= len(fields) {
		return nil
	}
	return []byte(fields[i])
}
