package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/dbglint/internal/hir"
	"github.com/gnolang/dbglint/internal/hir/dump"
)

var bodyName string

var treeCmd = &cobra.Command{
	Use:   "tree [dumps...]",
	Short: "Print the typed tree of a dump",
	Long: `Prints every body of the given dumps, or only the body named by --body,
with node types and adjustments.
Example) dbglint tree --body main crate.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("please provide dump file paths")
		}
		return runTree(logger, args, bodyName, cmd.OutOrStdout())
	},
}

func init() {
	treeCmd.Flags().StringVar(&bodyName, "body", "", "Owner name of the body to print")
}

func runTree(logger *zap.Logger, paths []string, bodyName string, w io.Writer) error {
	bodyFound := false
	for _, path := range paths {
		crate, err := dump.Load(path)
		if err != nil {
			logger.Error("Failed to load dump", zap.String("path", path), zap.Error(err))
			continue
		}

		p := hir.NewPrinter(w, crate.Typeck)
		for _, body := range crate.Bodies {
			if bodyName != "" && body.Owner != bodyName {
				continue
			}
			if err := p.PrintBody(body); err != nil {
				return err
			}
			bodyFound = true
		}
	}

	if !bodyFound {
		if bodyName != "" {
			return fmt.Errorf("body not found: %s", bodyName)
		}
		return fmt.Errorf("no bodies found")
	}
	return nil
}
