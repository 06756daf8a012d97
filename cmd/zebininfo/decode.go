package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/zebin"
	"github.com/wippyai/zebin/dump"
)

func newDecodeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "decode FILE...",
		Short: "Decode zebin files and print a summary of every kernel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, format, err := g.settings()
			if err != nil {
				return err
			}
			docs, err := decodeFiles(cmd.Context(), args, opts)
			if err != nil {
				return err
			}

			w := g.writer(cmd.OutOrStdout())
			failed := 0
			for _, doc := range docs {
				if doc.Error != "" {
					failed++
				}
				if err := dump.Write(w, doc, format); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to decode", failed, len(docs))
			}
			return nil
		},
	}
}

// decodeFiles decodes every path concurrently. Decode failures are recorded
// in the documents; only I/O errors abort.
func decodeFiles(ctx context.Context, paths []string, opts []zebin.Option) ([]*dump.Document, error) {
	docs := make([]*dump.Document, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := decodeFile(path, opts)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func decodeFile(path string, opts []zebin.Option) (*dump.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	res, err := zebin.Decode(data, opts...)
	return dump.New(path, res, err), nil
}
