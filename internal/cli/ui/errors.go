package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/business-central-sdk/bcschema/internal/schema"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Details      []string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	❌ ENTITY TYPE NOT FOUND: custmer
//	   Cannot find entity type 'custmer'.
//
//	   Did you mean: customer?
//
//	   → See all entity types: bcschema entities
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var header, body *color.Color
	var symbol string
	switch opts.Level {
	case ErrorLevelWarning:
		header, body = color.New(color.FgYellow, color.Bold), color.New(color.FgYellow)
		symbol = "⚠️"
	case ErrorLevelInfo:
		header, body = color.New(color.FgCyan, color.Bold), color.New(color.FgCyan)
		symbol = "ℹ️"
	default:
		header, body = color.New(color.FgRed, color.Bold), color.New(color.FgRed)
		symbol = "❌"
	}
	if opts.NoColor {
		header.DisableColor()
		body.DisableColor()
	}

	if opts.Context != "" {
		header.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
		body.Fprintf(&b, "   %s\n", opts.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	for _, detail := range opts.Details {
		body.Fprintf(&b, "   - %s\n", detail)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		newColor(opts.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := newColor(opts.NoColor, color.FgCyan)
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// EntityNotFoundError reports an unknown entity type name
func EntityNotFoundError(name string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context:      "ENTITY TYPE NOT FOUND",
		Problem:      fmt.Sprintf("Cannot find entity type '%s'.", name),
		Suggestions:  suggestions,
		HelpCommands: []string{"See all entity types: bcschema entities"},
		NoColor:      noColor,
	})
}

// MetadataError reports a metadata document that failed to load. Every
// problem of a *schema.MetadataErrors is listed.
func MetadataError(err error, noColor bool) string {
	opts := ErrorOptions{
		Context: "INVALID METADATA",
		Problem: err.Error(),
		HelpCommands: []string{
			"Point at another document: bcschema --metadata <path>",
		},
		NoColor: noColor,
	}

	var metaErrs *schema.MetadataErrors
	if errors.As(err, &metaErrs) && len(metaErrs.Errors) > 1 {
		opts.Problem = fmt.Sprintf("%d problems found in the metadata document.", len(metaErrs.Errors))
		for _, e := range metaErrs.Errors {
			opts.Details = append(opts.Details, e.Error())
		}
	}
	return FormatError(opts)
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context: "CONFIGURATION ERROR",
		Problem: message,
		HelpCommands: []string{
			"View config: cat bcschema.yaml",
			"Get help: bcschema --help",
		},
		NoColor: noColor,
	})
}
