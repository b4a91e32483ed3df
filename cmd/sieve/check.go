package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sievekit/sieve/internal/loader"
	"github.com/sievekit/sieve/pkg/schema"
)

var checkCmd = &cobra.Command{
	Use:   "check <schema>",
	Short: "Check a schema file for configuration errors",
	Long: `Compiles a schema file without evaluating any document and reports
unknown constraint keys, conflicting bounds, invalid patterns and other
configuration errors.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(args[0]); err != nil {
			fmt.Printf("Check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Schema is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(path string) error {
	raw, err := loader.LoadMapping(path)
	if err != nil {
		return err
	}
	if _, err := schema.Compile(raw); err != nil {
		return err
	}
	return nil
}
