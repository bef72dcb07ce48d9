package main

import (
	"github.com/spf13/cobra"

	"github.com/idl-lang/idlls/server"
)

var version = "0.1.0"

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := server.NewServer(version)
			return s.RunStdio()
		},
	}
}
