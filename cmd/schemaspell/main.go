// Package main provides the schemaspell binary entry point.
// Schemaspell spell checks property names and values of MCF schema nodes.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/c360studio/schemaspell/export"
	"github.com/c360studio/schemaspell/tokenizer"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "schemaspell"

	defaultConfigFile = "schemaspell.yaml"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Spell checker for MCF schema nodes",
		Long: `Schemaspell spell checks the property names and values of knowledge
graph schema nodes stored as MCF files.

Misspelled words are logged one line per offending property and can be
written to a JSON, YAML or CSV report with --output. Spelling errors do
not change the exit code.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.input, "input", "i", "", "Comma-separated globs of MCF files to check")
	flags.StringVarP(&opts.output, "output", "o", "", "Report file (.json, .yaml or .csv)")
	flags.StringVar(&opts.allowlist, "allowlist", "", "Comma-separated globs of allowed word files")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	flags.BoolVar(&opts.textOnly, "text-only", false, "Check quoted values only, skipping property names")
	flags.StringVar(&opts.allowWords, "allow-words", "", "Comma-separated extra allowed words")
	flags.StringVar(&opts.checkProps, "check-props", "", "Comma-separated properties to check exclusively")
	flags.StringVar(&opts.countersOutput, "counters-output", "", "Write counters in Prometheus text format to this file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Spell check MCF files once (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Re-run the spell check whenever input or allow-list files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	})

	cmd.AddCommand(configCmd(opts))

	cmd.AddCommand(&cobra.Command{
		Use:   "formats",
		Short: "List the report formats selectable by --output extension",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tEXTENSIONS\tMIME TYPE\tDESCRIPTION")
			for _, info := range export.Formats() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					info.Name, strings.Join(info.Extensions, ","), info.MIMEType, info.Description)
			}
			_ = w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "words TEXT...",
		Short: "Print the words a value is split into for checking",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			words := tokenizer.Words(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(words, "\n"))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func configCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage schemaspell config files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the effective configuration to a YAML file",
		Long: `Write the configuration resolved from defaults, --config, the environment
and flags to PATH (default ` + defaultConfigFile + `), including the default
list of ignored properties.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) > 0 {
				path = args[0]
			}
			return runConfigInit(cmd, opts, path, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}
