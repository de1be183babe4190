package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/dbglint/internal/hir/dump"
)

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Re-encode a dump as JSON or MessagePack",
	Long: `Reads a dump and writes it in the encoding chosen by the output
extension (.json, .hirpack). Source files are embedded in the output.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := convertDump(args[0], args[1]); err != nil {
			return err
		}
		logger.Debug("Dump converted", zap.String("from", args[0]), zap.String("to", args[1]))
		fmt.Fprintf(cmd.OutOrStdout(), "Dump written: %s\n", args[1])
		return nil
	},
}

func convertDump(in, out string) error {
	if _, err := dump.FormatOf(out); err != nil {
		return err
	}
	crate, err := dump.Load(in)
	if err != nil {
		return fmt.Errorf("error loading %s: %w", in, err)
	}
	return dump.Save(out, crate)
}
