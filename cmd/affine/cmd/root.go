package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// options holds the persistent flags and the logger built from them.
type options struct {
	logLevel string
	logFile  string

	logger    *slog.Logger
	logCloser io.Closer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "affine",
		Short:         "Affine image resampling with pooled buffers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, closer, err := setupLogger(cmd.ErrOrStderr(), opts.logLevel, opts.logFile)
			if err != nil {
				return err
			}
			opts.logger, opts.logCloser = logger, closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logCloser != nil {
				return opts.logCloser.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", os.Getenv("LOG_LEVEL"), "log level: debug, info, warn or error (env LOG_LEVEL)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "also write logs to this file, rotated")

	root.AddCommand(newTransformCmd(opts), newKernelsCmd(opts))
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("error:", err)
		os.Exit(1)
	}
}
