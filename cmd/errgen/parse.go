package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"errgen/internal/diag"
	"errgen/internal/lexer"
	"errgen/internal/parser"
	"errgen/internal/printer"
	"errgen/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a declaration file and print its canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileSet := source.NewFileSet()
		fileID, err := fileSet.Load(args[0])
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", args[0], err)
		}
		file := fileSet.Get(fileID)

		bag := diag.NewBag(maxDiagnostics(cmd))
		reporter := &diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		res := parser.ParseFile(file, lx, parser.Options{Reporter: reporter})

		if err := printDiagnostics(cmd, bag, fileSet); err != nil {
			return err
		}
		if bag.HasErrors() {
			return fmt.Errorf("%s: parsing failed", args[0])
		}

		cmd.Print(printer.File(res.File))
		return nil
	},
}
