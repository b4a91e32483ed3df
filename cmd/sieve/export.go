package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sievekit/sieve/internal/export"
	"github.com/sievekit/sieve/internal/loader"
	"github.com/sievekit/sieve/pkg/schema"
)

var exportCmd = &cobra.Command{
	Use:   "export <schema>",
	Short: "Export a schema as an OpenAPI 3 schema object",
	Long: `Compiles a schema file and prints the equivalent OpenAPI 3 schema
object, ready to embed in an API specification. Custom checks have no
OpenAPI equivalent and are omitted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		if err := runExport(args[0], format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	exportCmd.Flags().String("format", "json", "Output format (json or yaml)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(path, format string) error {
	raw, err := loader.LoadMapping(path)
	if err != nil {
		return err
	}

	compiled, err := schema.Compile(raw)
	if err != nil {
		return err
	}

	data, err := export.OpenAPISchema(compiled).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize schema: %w", err)
	}

	switch format {
	case "json":
		var pretty map[string]any
		if err := json.Unmarshal(data, &pretty); err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pretty)
	case "yaml":
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		return yaml.NewEncoder(os.Stdout).Encode(doc)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
