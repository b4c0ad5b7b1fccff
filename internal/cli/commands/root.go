package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/business-central-sdk/bcschema/internal/cli/ui"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions holds the persistent flags shared by every subcommand
type globalOptions struct {
	configPath   string
	metadataPath string
	policyPath   string
	format       string
	noColor      bool
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "bcschema",
		Short: "Inspect Business Central OData metadata",
		Long: color.CyanString(`bcschema - Business Central metadata schema tool

bcschema reads a Business Central $metadata document and shows the entity
types, complex types and validation rules it declares. It can also convert
raw JSON records into their typed form.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			if opts.format != formatTable && opts.format != formatJSON {
				return fmt.Errorf("unsupported format: %s (supported: json, table)", opts.format)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: ./bcschema.yaml)")
	flags.StringVar(&opts.metadataPath, "metadata", "", "Path to the $metadata document")
	flags.StringVar(&opts.policyPath, "policy", "", "Path to a YAML policy override file")
	flags.StringVar(&opts.format, "format", formatTable, "Output format: json or table")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newEntitiesCommand(opts))
	rootCmd.AddCommand(newEntityCommand(opts))
	rootCmd.AddCommand(newComplexTypesCommand(opts))
	rootCmd.AddCommand(newRulesCommand(opts))
	rootCmd.AddCommand(newConvertCommand(opts))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the bcschema version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			titleColor.Fprint(out, "bcschema version: ")
			fmt.Fprintln(out, Version)
			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)
			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, goVer)
		},
	}
}

// displayError carries a preformatted message for the terminal
type displayError struct {
	display string
	err     error
}

func (e *displayError) Error() string {
	return e.err.Error()
}

func (e *displayError) Unwrap() error {
	return e.err
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		var de *displayError
		if errors.As(err, &de) {
			fmt.Fprint(rootCmd.ErrOrStderr(), de.display)
			return err
		}
		ui.WriteError(rootCmd.ErrOrStderr(), ui.ErrorOptions{Problem: "Error: " + err.Error()})
		return err
	}
	return nil
}
