package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/dbglint/internal"
	"github.com/gnolang/dbglint/internal/hir/dump"
	tt "github.com/gnolang/dbglint/internal/types"
	"github.com/gnolang/dbglint/scanner"
)

// DefaultConfigFile is looked up in the working directory when no
// configuration path is given.
const DefaultConfigFile = ".dbglint.yaml"

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// export the function NewEngine to be used in other packages
func New(rootDir string, configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(rootDir, config)
}

// NewWithConfig creates an engine from an already loaded configuration.
func NewWithConfig(rootDir string, config Config) (*internal.Engine, error) {
	engine, err := internal.NewEngine(rootDir, config.Rules)
	if err != nil {
		return nil, err
	}
	for _, p := range config.IgnorePaths {
		engine.IgnorePath(p)
	}
	return engine, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	allIssues := []tt.Issue{}
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		allIssues = append(allIssues, issues...)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allIssues, err
		}
	}

	return allIssues, nil
}

// ProcessPath lints path, a dump file or a directory searched recursively
// for dumps. Files of a directory are processed concurrently, one worker per
// CPU. A failing file does not stop the others; the first error is returned
// together with every issue found.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	issues := []tt.Issue{}

	info, err := os.Stat(path)
	if err != nil {
		return issues, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return issues, nil
		}
		fileIssues, err := processor(engine, path)
		if err != nil {
			return issues, err
		}
		return append(issues, fileIssues...), nil
	}

	files, err := collectFiles(path)
	if err != nil {
		return issues, err
	}

	bar := newProgressBar(len(files), path)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, filePath := range files {
		if ctx.Err() != nil {
			break
		}
		fp := filePath
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bar.Describe(filepath.Base(fp))

			fileIssues, err := processor(engine, fp)
			_ = bar.Add(1)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				return fmt.Errorf("%s: %w", fp, err)
			}

			mu.Lock()
			issues = append(issues, fileIssues...)
			mu.Unlock()
			return nil
		})
	}

	err = g.Wait()
	_ = bar.Finish()

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Filename != issues[j].Filename {
			return issues[i].Filename < issues[j].Filename
		}
		return issues[i].Start.Offset < issues[j].Start.Offset
	})

	if ctxErr := ctx.Err(); ctxErr != nil {
		return issues, ctxErr
	}
	return issues, err
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

// collectFiles returns the dump files below dir, largest first so the
// longest runs start early.
func collectFiles(dir string) ([]string, error) {
	infos, err := scanner.New(dir, hasDesiredExtension).Scan()
	if err != nil {
		return nil, err
	}
	files := make([]string, len(infos))
	for i, info := range infos {
		files[i] = info.Path
	}
	return files, nil
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	var w io.Writer = io.Discard
	if term.IsTerminal(int(os.Stderr.Fd())) {
		w = os.Stderr
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func hasDesiredExtension(path string) bool {
	return dump.IsDumpFile(path)
}

// Config represents the overall configuration with a name and a slice of rules.
type Config struct {
	Name        string                   `yaml:"name" toml:"name"`
	Rules       map[string]tt.ConfigRule `yaml:"rules" toml:"rules"`
	IgnorePaths []string                 `yaml:"ignore_paths,omitempty" toml:"ignore_paths,omitempty"`
}

// DefaultConfig is what `dbglint init` writes.
func DefaultConfig() Config {
	return Config{
		Name: "dbglint",
		Rules: map[string]tt.ConfigRule{
			"debug-assert-with-mut-call": {Severity: tt.SeverityWarning},
		},
	}
}

// LoadConfig reads a YAML or, for a `.toml` extension, TOML configuration.
// A missing file yields an empty configuration, which keeps rule defaults.
func LoadConfig(configurationPath string) (Config, error) {
	return parseConfigurationFile(configurationPath)
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	// Read the configuration file
	data, err := os.ReadFile(configurationPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("error reading configuration: %w", err)
	}

	// Parse the configuration file
	if isTOML(configurationPath) {
		err = toml.Unmarshal(data, &config)
	} else {
		err = yaml.Unmarshal(data, &config)
	}
	if err != nil {
		return config, fmt.Errorf("error parsing configuration %s: %w", configurationPath, err)
	}

	return config, nil
}

// WriteConfig stores config at path, as TOML for a `.toml` extension and as
// YAML otherwise.
func WriteConfig(path string, config Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(config)
		data = buf.Bytes()
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing configuration: %w", err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
