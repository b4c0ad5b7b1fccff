package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/business-central-sdk/bcschema/internal/record"
)

func newConvertCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <entity> [file|-]",
		Short: "Convert raw JSON records into their typed form",
		Long: `Convert raw JSON records into their typed form.

Reads a JSON object, or an array of objects, from the file or from stdin.
Every declared property is converted through its type; unknown keys are
dropped. Output is always JSON.`,
		Example: `  # Convert a record from a file
  bcschema convert customer customer.json

  # Convert records from stdin
  cat customers.json | bcschema convert customer -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			et, err := sess.lookupEntity(args[0], opts.noColor)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			records, many, err := decodeRecords(in)
			if err != nil {
				return err
			}

			converted := make([]map[string]any, len(records))
			for i, raw := range records {
				converted[i] = record.Hydrate(et, raw).Attributes()
			}

			sess.logger.Debug("converted records",
				zap.String("entity_type", et.Name()),
				zap.Int("count", len(converted)),
			)

			if many {
				return writeJSON(cmd.OutOrStdout(), converted)
			}
			return writeJSON(cmd.OutOrStdout(), converted[0])
		},
	}
}

// decodeRecords reads a JSON object or an array of objects. Numbers are kept
// as json.Number so conversion sees their literal text.
func decodeRecords(r io.Reader) ([]map[string]any, bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read input: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, false, fmt.Errorf("no input records")
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	if data[0] == '[' {
		var records []map[string]any
		if err := decoder.Decode(&records); err != nil {
			return nil, false, fmt.Errorf("failed to decode input records: %w", err)
		}
		return records, true, nil
	}

	var single map[string]any
	if err := decoder.Decode(&single); err != nil {
		return nil, false, fmt.Errorf("failed to decode input record: %w", err)
	}
	return []map[string]any{single}, false, nil
}
