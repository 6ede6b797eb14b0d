// Package main provides the scopemetrics binary entry point.
// Scopemetrics is a pluggable framework for quality-control analyses of
// microscope acquisitions; the CLI discovers registered analyses and
// describes their input requirements.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scopemetrics/scopemetrics/analysis"
	"github.com/scopemetrics/scopemetrics/config"
	"github.com/scopemetrics/scopemetrics/runner"
	"github.com/scopemetrics/scopemetrics/samples/fieldillum"
)

const (
	Version = "0.1.0"
	appName = "scopemetrics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := registerAnalyses(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// registerAnalyses populates the process-wide registries. Registration is
// explicit so that the set of available analyses is visible here rather
// than hidden in import side effects.
func registerAnalyses() error {
	if err := fieldillum.Register(analysis.ImageAnalyses); err != nil {
		return fmt.Errorf("registering %s: %w", fieldillum.Name, err)
	}
	return nil
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Microscope acquisition quality-control framework",
		Long: `Scopemetrics is a pluggable framework for quality-control analyses of
microscope acquisitions. Analyses declare typed input requirements, are
validated before execution and emit shape-checked schema artifacts.

The CLI lists the registered analyses per category and describes the
requirements each one declares.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(configPath, logLevel)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(listCmd())
	cmd.AddCommand(describeCmd())

	return cmd
}

func setupLogging(configPath, logLevel string) error {
	cfg, err := config.NewLoader(slog.Default()).Load(configPath)
	if err != nil {
		return err
	}

	levelName := cfg.Log.Level
	if logLevel != "" {
		levelName = logLevel
	}
	level, err := config.ParseLevel(levelName)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
	return nil
}

func registryForLevel(level string) (*analysis.Registry, error) {
	switch runner.Level(level) {
	case runner.LevelImage:
		return analysis.ImageAnalyses, nil
	case runner.LevelDataset:
		return analysis.DatasetAnalyses, nil
	case runner.LevelProgression:
		return analysis.ProgressionAnalyses, nil
	default:
		return nil, fmt.Errorf("unknown analysis level %q", level)
	}
}

func listCmd() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			levels := []string{"image", "dataset", "progression"}
			if level != "" {
				levels = []string{level}
			}

			for _, lvl := range levels {
				reg, err := registryForLevel(lvl)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", lvl)
				names := reg.Names()
				if len(names) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "  (none)")
					continue
				}
				for _, name := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "restrict to one level (image, dataset, progression)")
	return cmd
}

func describeCmd() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "describe <analysis>",
		Short: "Describe an analysis's input requirements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registryForLevel(level)
			if err != nil {
				return err
			}

			a, err := reg.New(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tNAME\tTYPE\tUNITS\tOPTIONAL\tDEFAULT\tDESCRIPTION")
			printRequirements(w, "data", a.Input().DataRequirements())
			printRequirements(w, "metadata", a.Input().MetadataRequirements())
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&level, "level", "image", "analysis level (image, dataset, progression)")
	return cmd
}

func printRequirements(w *tabwriter.Writer, kind string, reqs []analysis.Requirement) {
	for _, r := range reqs {
		def := ""
		if r.HasDefault {
			def = fmt.Sprintf("%v", r.Default)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\t%s\n",
			kind, r.Name, r.Type, r.Units, r.Optional, def, r.Description)
	}
}
