package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"gosbs/internal/app"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	config := app.DefaultConfig()
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "gosbs",
		Short: "BaseStation (SBS-1) line decoder",
		Long: `Decode and normalize BaseStation (SBS-1) lines as written by dump1090,
rtl1090 and other Mode-S receivers on port 30003.

Example usage:
  nc localhost 30003 | gosbs decode
  gosbs normalize --log-dir ./archive feed.txt`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return nil
			}
			return applyConfigFile(cmd.Flags(), configPath, &config)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.StringVarP(&config.Output, "output", "o", app.DefaultOutput, "Output file (- for stdout)")
	flags.StringVarP(&config.LogDir, "log-dir", "l", "", "Archive normalized lines in daily files under this directory")
	flags.BoolVarP(&config.LogRotateUTC, "utc", "u", true, "Use UTC for archive rotation")
	flags.IntVar(&config.RetainDays, "retain-days", 0, "Remove archive files older than this many days (0 keeps all)")
	flags.BoolVar(&config.Strict, "strict", false, "Stop at the first line that fails to decode")
	flags.BoolVar(&config.SkipUnknown, "skip-unknown", false, "Drop lines whose message type is not SEL, ID, AIR, STA, CLK or MSG")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	rootCmd.AddCommand(
		newFormatCommand("decode", "Decode lines to JSON objects", app.FormatJSON, &config),
		newFormatCommand("normalize", "Re-encode lines in canonical BaseStation form", app.FormatSBS, &config),
	)

	return rootCmd
}

func newFormatCommand(use, short, format string, config *app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Format = format
			if len(args) == 1 {
				config.Input = args[0]
			}
			return app.NewApplication(*config).Start()
		},
	}
}

// applyConfigFile loads the YAML file into config and then re-applies the
// flags given on the command line, so they win over the file.
func applyConfigFile(flags *pflag.FlagSet, path string, config *app.Config) error {
	changed := map[string]string{}
	flags.Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})

	if err := app.LoadConfig(path, config); err != nil {
		return err
	}

	for name, value := range changed {
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("failed to apply flag --%s: %w", name, err)
		}
	}
	return nil
}
