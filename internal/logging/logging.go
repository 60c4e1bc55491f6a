// Package logging builds the charmbracelet loggers shared by the CLI and the
// registries it opens.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/agentx-labs/productor/internal/branding"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error") using the named format ("text", "json" or "logfmt").
func New(w io.Writer, level, format string) (*log.Logger, error) {
	lvl := log.WarnLevel
	if level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		lvl = parsed
	}

	formatter, err := parseFormatter(format)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          branding.CLIName(),
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: lvl == log.DebugLevel,
	}), nil
}

func parseFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown log format %q (want text, json or logfmt)", format)
	}
}
