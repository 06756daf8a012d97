package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/zebin"
	"github.com/wippyai/zebin/dump"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Decode FILE again every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, format, err := g.settings()
			if err != nil {
				return err
			}
			path := args[0]
			w := g.writer(cmd.OutOrStdout())
			show := func() {
				doc, err := decodeFile(path, opts)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					return
				}
				if err := dump.Write(w, doc, format); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			}

			fw, err := newFileWatcher(path)
			if err != nil {
				return err
			}
			defer fw.Close()
			show()
			return fw.Run(cmd.Context(), show)
		},
	}
}

// fileWatcher reports changes to one file. It watches the parent directory
// so editors that replace the file on save are still seen.
type fileWatcher struct {
	fs   *fsnotify.Watcher
	path string
}

func newFileWatcher(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &fileWatcher{fs: fs, path: abs}, nil
}

// Run calls onChange after every write or re-creation of the file until ctx
// is done.
func (w *fileWatcher) Run(ctx context.Context, onChange func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				zebin.Logger().Debug("watched file changed", zap.String("file", w.path), zap.Stringer("op", ev.Op))
				onChange()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (w *fileWatcher) Close() error {
	return w.fs.Close()
}
