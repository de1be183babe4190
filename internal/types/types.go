package types

import (
	"fmt"
	"go/token"
	"strings"
)

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      token.Position
	End        token.Position
	Severity   Severity
}

// Severity is how loudly an issue is reported. SeverityOff disables a rule.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	}
	return "UNKNOWN"
}

// ParseSeverity accepts the names produced by String, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return SeverityError, nil
	case "WARNING", "WARN":
		return SeverityWarning, nil
	case "INFO":
		return SeverityInfo, nil
	case "OFF":
		return SeverityOff, nil
	}
	return 0, fmt.Errorf("invalid severity %q", s)
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText lets yaml, toml and json configs spell severities by name.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ConfigRule is the per-rule section of the configuration file.
type ConfigRule struct {
	Severity Severity `yaml:"severity" toml:"severity" json:"severity"`
}
