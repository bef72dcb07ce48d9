// Command idllsp is the CLI entrypoint wrapping the idl language server:
// `idllsp lsp` runs the LSP server over stdio, `idllsp parse` dumps a
// best-effort parse of a single file for debugging.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "idllsp",
		Short: "Language server and CLI tools for the IDL",
	}

	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newParseCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
