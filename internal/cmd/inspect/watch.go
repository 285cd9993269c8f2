package inspect

import (
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/krogueintel/batchbuffer-logger-all/pkg/log"
)

// NewWatchCommand returns the "watch" command, reporting trace file creation
// and deletion in a directory so rotation and retention can be observed while
// the instrumented application runs.
func NewWatchCommand(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a directory for trace file rotation and retention",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, _ := cmd.Flags().GetString("prefix")
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()
			if err := watcher.Add(args[0]); err != nil {
				return err
			}
			logger.Info("watching", log.Str("dir", args[0]))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if prefix != "" && !strings.HasPrefix(filepath.Base(ev.Name), prefix+".") {
						continue
					}
					switch {
					case ev.Op.Has(fsnotify.Create):
						logger.Info("trace file created", log.Str("path", ev.Name))
					case ev.Op.Has(fsnotify.Remove):
						logger.Info("trace file deleted", log.Str("path", ev.Name))
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.Error("watch error", log.Err(err))
				}
			}
		},
	}
	cmd.Flags().String("prefix", "", "only report files named <prefix>.<sequence>")
	return cmd
}
