package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"errgen/internal/diag"
	"errgen/internal/diagfmt"
	"errgen/internal/lexer"
	"errgen/internal/source"
	"errgen/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Dump the token stream of a declaration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileSet := source.NewFileSet()
		fileID, err := fileSet.Load(args[0])
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", args[0], err)
		}
		file := fileSet.Get(fileID)

		bag := diag.NewBag(maxDiagnostics(cmd))
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

		var tokens []token.Token
		for {
			tok := lx.Next()
			tokens = append(tokens, tok)
			if tok.Kind == token.EOF {
				break
			}
		}

		diagfmt.Tokens(os.Stdout, tokens, fileSet)

		if err := printDiagnostics(cmd, bag, fileSet); err != nil {
			return err
		}
		if bag.HasErrors() {
			return fmt.Errorf("%s: tokenization failed", args[0])
		}
		return nil
	},
}
