package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/dbglint/formatter"
	"github.com/gnolang/dbglint/internal"
	tt "github.com/gnolang/dbglint/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-lint dumps whenever they change",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := newEngine(".")
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine.OnIssues(issuePrinter(logger, cmd.OutOrStdout()))
		if err := engine.StartWatching(args...); err != nil {
			return fmt.Errorf("error starting watcher: %w", err)
		}
		logger.Info("Watching for dump changes", zap.Strings("dirs", args))

		<-ctx.Done()
		return engine.StopWatching()
	},
}

// issuePrinter renders issues of one re-linted file. The watcher may call it
// from several goroutines.
func issuePrinter(logger *zap.Logger, w io.Writer) func(string, []tt.Issue) {
	var mu sync.Mutex
	return func(filename string, issues []tt.Issue) {
		mu.Lock()
		defer mu.Unlock()

		if len(issues) == 0 {
			fmt.Fprintf(w, "%s: no issues\n", filename)
			return
		}
		issuesByFile, sortedFiles := groupByFile(issues)
		for _, name := range sortedFiles {
			sourceCode, err := internal.ReadSourceCode(name)
			if err != nil {
				logger.Warn("Error reading source file", zap.String("file", name), zap.Error(err))
				sourceCode = &internal.SourceCode{}
			}
			fmt.Fprintln(w, formatter.GenerateFormattedIssue(issuesByFile[name], sourceCode))
		}
	}
}
