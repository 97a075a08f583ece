package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/provide-io/binvid/pkg/logging"
)

const version = "0.1.0"

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// app carries state shared by every subcommand.
type app struct {
	logLevel    string
	versionFlag bool
	logger      hclog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	root := &cobra.Command{
		Use:   "binvid",
		Short: "Embed files into block-grid video containers",
		Long: `Embed arbitrary files into BINVID/COLVID containers with a sample
block-grid frame, and dislodge them back out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := logging.Resolve(a.logLevel, "info")
			output := cmd.ErrOrStderr()
			if cfg.Path != "" {
				output = nil
			}
			a.logger = logging.New("binvid", cfg, output)
			a.logger.Debug("🔍 Log level configured", "level", cfg.Level, "source", cfg.Source, "json", cfg.JSON)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.versionFlag {
				printVersion(cmd)
				return nil
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, json[:level])")
	root.Flags().BoolVarP(&a.versionFlag, "version", "V", false, "Show version information")

	root.AddCommand(
		newEmbedCmd(a),
		newDislodgeCmd(a),
		newInspectCmd(a),
		newPresetsCmd(a),
	)
	return root
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "binvid %s\n", version)
	fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", getBuildTimestamp())
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("binvid %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
