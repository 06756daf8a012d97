package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/zebin"
	"github.com/wippyai/zebin/config"
	"github.com/wippyai/zebin/container"
	"github.com/wippyai/zebin/dump"
	"github.com/wippyai/zebin/zeinfo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	format     string
	verbose    bool
	noColor    bool
	strict     bool
	grfSize    uint32
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "zebininfo",
		Short:         "Inspect zebin GPU kernel binaries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !g.verbose {
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			zebin.SetLogger(l)
			zeinfo.SetLogger(l)
			container.SetLogger(l)
			config.SetLogger(l)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "HCL options file")
	flags.StringVarP(&g.format, "format", "o", "", "Output format: text, json, yaml or cbor")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "Log decode steps to stderr")
	flags.BoolVar(&g.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&g.strict, "strict", false, "Fail on unknown .ze_info keys")
	flags.Uint32Var(&g.grfSize, "grf-size", 0, "Register size in bytes (default 32)")

	root.AddCommand(
		newDecodeCmd(&g),
		newTreeCmd(&g),
		newBrowseCmd(&g),
		newWatchCmd(&g),
	)
	return root
}

// settings merges the options file with the command line. Flags win.
func (g *globalFlags) settings() ([]zebin.Option, dump.Format, error) {
	var opts []zebin.Option
	format := dump.FormatText
	if g.configPath != "" {
		f, err := config.Load(g.configPath)
		if err != nil {
			return nil, "", err
		}
		opts = f.Options()
		format = f.Format()
	}
	if g.format != "" {
		f, err := dump.ParseFormat(g.format)
		if err != nil {
			return nil, "", err
		}
		format = f
	}
	if g.strict {
		opts = append(opts, zebin.WithTolerateUnknown(false))
	}
	if g.grfSize != 0 {
		opts = append(opts, zebin.WithGRFSize(g.grfSize))
	}
	return opts, format, nil
}

type plainWriter struct{ io.Writer }

// writer strips styling unless out is a terminal and colors are enabled.
func (g *globalFlags) writer(out io.Writer) io.Writer {
	if g.noColor || !isTerminal(out) {
		return plainWriter{out}
	}
	return out
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
