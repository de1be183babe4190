package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/dbglint/formatter"
	"github.com/gnolang/dbglint/internal"
	tt "github.com/gnolang/dbglint/internal/types"
	"github.com/gnolang/dbglint/lint"
)

var (
	ignoreRules    string
	ignorePaths    string
	lintJsonOutput bool
	outPath        string
	cacheDir       string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint typed-tree dumps",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("please provide dump file or directory paths")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		engine, err := newEngine(".")
		if err != nil {
			return err
		}

		return runNormalLintProcess(ctx, logger, engine, args, lintJsonOutput, outPath, cmd.OutOrStdout())
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for the result cache; empty disables caching")
}

// newEngine builds an engine from the global flags.
func newEngine(rootDir string) (*internal.Engine, error) {
	engine, err := lint.New(rootDir, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lint engine: %w", err)
	}
	engine.SetLogger(logger)

	for _, rule := range splitList(ignoreRules) {
		engine.IgnoreRule(rule)
	}
	for _, path := range splitList(ignorePaths) {
		engine.IgnorePath(path)
	}

	if cacheDir != "" {
		cache, err := internal.NewCache(cacheDir)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(cfgFile); err == nil {
			if err := cache.SetDependencies(cfgFile); err != nil {
				return nil, err
			}
		}
		engine.UseCache(cache)
	}
	return engine, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func runNormalLintProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, isJson bool, jsonOutput string, w io.Writer) error {
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		return err
	}

	if err := printIssues(logger, issues, isJson, jsonOutput, w); err != nil {
		return err
	}

	if len(issues) > 0 {
		return ErrIssuesFound
	}
	return nil
}

func groupByFile(issues []tt.Issue) (map[string][]tt.Issue, []string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)
	return issuesByFile, sortedFiles
}

func printIssues(logger *zap.Logger, issues []tt.Issue, isJson bool, jsonOutput string, w io.Writer) error {
	issuesByFile, sortedFiles := groupByFile(issues)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			fileIssues := issuesByFile[filename]
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				// the dump may outlive the sources it was made from
				logger.Warn("Error reading source file", zap.String("file", filename), zap.Error(err))
				sourceCode = &internal.SourceCode{}
			}
			output := formatter.GenerateFormattedIssue(fileIssues, sourceCode)
			fmt.Fprintln(w, output)
		}
		return nil
	}

	// JSON output
	d, err := json.Marshal(issuesByFile)
	if err != nil {
		return fmt.Errorf("error marshalling issues to JSON: %w", err)
	}
	if jsonOutput == "" {
		fmt.Fprintln(w, string(d))
		return nil
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}
