package commands

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/business-central-sdk/bcschema/internal/cli/ui"
	"github.com/business-central-sdk/bcschema/internal/schema"
)

// EntitySummary is the JSON shape of an entity type listing
type EntitySummary struct {
	Name       string   `json:"name"`
	Properties int      `json:"properties"`
	Key        []string `json:"key"`
}

// ComplexTypeSummary is the JSON shape of a complex type listing
type ComplexTypeSummary struct {
	Name       string   `json:"name"`
	Properties []string `json:"properties"`
}

// PropertyDetail is the JSON shape of a single property
type PropertyDetail struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	DocType   string `json:"doc_type"`
	Nullable  bool   `json:"nullable"`
	MaxLength int    `json:"max_length,omitempty"`
	ReadOnly  bool   `json:"read_only"`
	Fillable  bool   `json:"fillable"`
}

// EntityDetail is the JSON shape of an entity type
type EntityDetail struct {
	Name       string           `json:"name"`
	Key        []string         `json:"key"`
	Properties []PropertyDetail `json:"properties"`
	Navigation []PropertyDetail `json:"navigation,omitempty"`
}

func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func newEntitiesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List the entity types of the metadata document",
		Example: `  # List entity types
  bcschema entities --metadata metadata.xml

  # List entity types as JSON
  bcschema entities --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}

			summaries := make([]EntitySummary, 0)
			for _, et := range sess.schema.EntityTypes() {
				summaries = append(summaries, EntitySummary{
					Name:       et.Name(),
					Properties: len(et.Properties()),
					Key:        et.Key(),
				})
			}

			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(out, summaries)
			}

			table := ui.NewTable(out, []string{"NAME", "PROPERTIES", "KEY"}, &ui.TableOptions{NoColor: opts.noColor})
			for _, s := range summaries {
				table.AddRow(s.Name, strconv.Itoa(s.Properties), strings.Join(s.Key, ", "))
			}
			table.Render()
			return nil
		},
	}
}

func newEntityCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "entity <name>",
		Short: "Show the properties of an entity type",
		Long: `Show the properties of an entity type.

Every property is listed with its declared type, documentation type,
nullability, maximum length and write policy.`,
		Example: `  # Show the customer entity type
  bcschema entity customer`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			et, err := sess.lookupEntity(args[0], opts.noColor)
			if err != nil {
				return err
			}

			detail := EntityDetail{
				Name:       et.Name(),
				Key:        et.Key(),
				Properties: describeProperties(et.Properties()),
				Navigation: describeProperties(et.NavigationProperties()),
			}

			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(out, detail)
			}

			ui.Header(out, detail.Name, opts.noColor)
			kv := ui.NewKeyValueTable(out, opts.noColor)
			kv.AddRow("Key", strings.Join(detail.Key, ", "))
			kv.AddRow("Properties", strconv.Itoa(len(detail.Properties)))
			kv.Render()
			io.WriteString(out, "\n")

			table := ui.NewTable(out,
				[]string{"NAME", "TYPE", "DOC TYPE", "NULLABLE", "MAX LENGTH", "READ-ONLY", "FILLABLE"},
				&ui.TableOptions{NoColor: opts.noColor},
			)
			for _, p := range detail.Properties {
				maxLength := ""
				if p.MaxLength > 0 {
					maxLength = strconv.Itoa(p.MaxLength)
				}
				table.AddRow(p.Name, p.Type, p.DocType, ui.YesNo(p.Nullable), maxLength, ui.YesNo(p.ReadOnly), ui.YesNo(p.Fillable))
			}
			table.Render()

			if len(detail.Navigation) > 0 {
				io.WriteString(out, "\n")
				nav := ui.NewTable(out, []string{"NAVIGATION", "TARGET"}, &ui.TableOptions{NoColor: opts.noColor})
				for _, p := range detail.Navigation {
					nav.AddRow(p.Name, p.Type)
				}
				nav.Render()
			}
			return nil
		},
	}
}

func describeProperties(props []*schema.Property) []PropertyDetail {
	details := make([]PropertyDetail, 0, len(props))
	for _, p := range props {
		maxLength, _ := p.MaxLength()
		details = append(details, PropertyDetail{
			Name:      p.Name(),
			Type:      p.Type(),
			DocType:   p.DocType(),
			Nullable:  p.Nullable(),
			MaxLength: maxLength,
			ReadOnly:  p.ReadOnly(),
			Fillable:  p.Fillable(),
		})
	}
	return details
}

func newComplexTypesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complex-types",
		Short: "List the complex types of the metadata document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}

			summaries := make([]ComplexTypeSummary, 0)
			for _, ct := range sess.schema.ComplexTypes() {
				names := make([]string, 0)
				for _, p := range ct.Properties() {
					names = append(names, p.Name())
				}
				summaries = append(summaries, ComplexTypeSummary{Name: ct.Name(), Properties: names})
			}

			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(out, summaries)
			}

			table := ui.NewTable(out, []string{"NAME", "PROPERTIES"}, &ui.TableOptions{NoColor: opts.noColor})
			for _, s := range summaries {
				table.AddRow(s.Name, strings.Join(s.Properties, ", "))
			}
			table.Render()
			return nil
		},
	}
}

func newRulesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules <entity>",
		Short: "Print the validation rules of an entity type as JSON",
		Long: `Print the validation rules of an entity type as JSON.

Keys are field paths; nested complex fields use dotted paths and collection
elements use '*'. Output is always JSON.`,
		Example: `  bcschema rules customer`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			et, err := sess.lookupEntity(args[0], opts.noColor)
			if err != nil {
				return err
			}

			// encoding/json sorts map keys
			return writeJSON(cmd.OutOrStdout(), et.ValidationRules())
		},
	}
}
