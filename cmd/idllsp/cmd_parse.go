package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idl-lang/idlls/idl"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an IDL file and dump its statements and errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			doc := idl.NewDocument(string(data))
			tree := idl.ParseIdl(doc)

			switch outputFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(dumpTree(doc, tree))
			case "line":
				printTreeLines(doc, tree)
				return nil
			default:
				return fmt.Errorf("unknown format: %s (expected json, line)", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (json, line)")
	return cmd
}

type dumpStatement struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type dumpError struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Message string `json:"message"`
}

type dumpResult struct {
	Statements []dumpStatement `json:"statements"`
	Errors     []dumpError     `json:"errors"`
}

func dumpTree(doc *idl.Document, tree *idl.SyntaxTree) dumpResult {
	out := dumpResult{}
	for _, s := range tree.Statements {
		start, end := s.Span()
		out.Statements = append(out.Statements, dumpStatement{
			Kind: fmt.Sprintf("%T", s), Start: start, End: end,
		})
	}
	for _, e := range tree.Errors {
		out.Errors = append(out.Errors, dumpError{Start: e.Start, End: e.End, Message: e.Message})
	}
	return out
}

func printTreeLines(doc *idl.Document, tree *idl.SyntaxTree) {
	for _, s := range tree.Statements {
		start, end := s.Span()
		sr := doc.RangeBetween(start, end)
		fmt.Printf("%-20T %s\n", s, rangeString(sr))
	}
	for _, e := range tree.Errors {
		er := doc.RangeBetween(e.Start, e.End)
		fmt.Printf("error: %s: %s\n", rangeString(er), e.Message)
	}
}

func rangeString(r *idl.Range) string {
	if r == nil {
		return "?"
	}
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
