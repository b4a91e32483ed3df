package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sievekit/sieve/internal/cli"
	"github.com/sievekit/sieve/internal/loader"
	"github.com/sievekit/sieve/internal/presentation/report"
	"github.com/sievekit/sieve/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Validate a document against a schema",
	Long: `Reads a document file (YAML or JSON) and evaluates it against a schema,
taken from a file (--schema) or from the schema store (--name).
Exits 0 when the document is valid, 1 when it is not, and 2 for
configuration errors (unreadable files, malformed schema).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		code, err := runValidate(cmd, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		os.Exit(code)
	},
}

func init() {
	validateCmd.Flags().String("schema", "", "Path to the schema file")
	validateCmd.Flags().String("name", "", "Name of a stored schema")
	validateCmd.Flags().Bool("strict", false, "Report unknown document fields as errors")
	validateCmd.Flags().Bool("json", false, "Print the raw result as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, documentPath string) (int, error) {
	document, err := loader.LoadMapping(documentPath)
	if err != nil {
		return 0, err
	}

	raw, err := resolveSchema(cmd)
	if err != nil {
		return 0, err
	}

	compiled, err := schema.Compile(raw)
	if err != nil {
		return 0, err
	}

	var opts []schema.Option
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		opts = append(opts, schema.Strict())
	}

	res := schema.Evaluate(compiled, document, opts...)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		if err := json.NewEncoder(os.Stdout).Encode(res); err != nil {
			return 0, err
		}
	} else if err := report.Render(os.Stdout, res); err != nil {
		return 0, err
	}

	if res.Valid {
		return 0, nil
	}
	return 1, nil
}

// resolveSchema reads the schema from --schema or loads it from the store
// via --name.
func resolveSchema(cmd *cobra.Command) (map[string]any, error) {
	schemaPath, _ := cmd.Flags().GetString("schema")
	name, _ := cmd.Flags().GetString("name")

	switch {
	case schemaPath != "" && name != "":
		return nil, fmt.Errorf("--schema and --name are mutually exclusive")
	case schemaPath != "":
		return loader.LoadMapping(schemaPath)
	case name != "":
		store, closer := cli.NewStore(storeOptions(cmd))
		defer closer()
		return store.Load(context.Background(), name)
	default:
		return nil, fmt.Errorf("one of --schema or --name is required")
	}
}
