package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agentx-labs/productor/internal/branding"
	"github.com/agentx-labs/productor/internal/config"
	"github.com/agentx-labs/productor/internal/logging"
	"github.com/agentx-labs/productor/internal/tracing"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// Global flags.
var (
	manifestPath  string
	registryName  string
	logLevel      string
	logFormat     string
	traceExporter string
)

// Per-invocation state set up in PersistentPreRunE.
var (
	logger   *log.Logger
	provider *tracing.Provider
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` finds plugin implementations by convention. It walks a search root,
loads each source unit once, keeps the types that satisfy a contract and
indexes them by name. Registries are described in ` + branding.ManifestFile() + `.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&manifestPath, "manifest", "", "Registry manifest (default from config, then "+branding.ManifestFile()+")")
	flags.StringVarP(&registryName, "registry", "r", "", "Registry to open (default: first in the manifest)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text, json, logfmt")
	flags.StringVar(&traceExporter, "trace", "", "Trace exporter: none, stdout, otlp")
}

// setup loads user config and builds the logger and tracer. Flags take
// precedence over config values.
func setup(cmd *cobra.Command, _ []string) error {
	config.Load()

	if manifestPath == "" {
		manifestPath = config.Get(config.KeyManifest)
	}
	if logLevel == "" {
		logLevel = config.Get(config.KeyLogLevel)
	}
	if logFormat == "" {
		logFormat = config.Get(config.KeyLogFormat)
	}
	if traceExporter == "" {
		traceExporter = config.Get(config.KeyTraceExporter)
	}

	var err error
	logger, err = logging.New(cmd.ErrOrStderr(), logLevel, logFormat)
	if err != nil {
		return err
	}

	provider, err = tracing.NewProvider(cmd.Context(), tracing.Config{
		Exporter:    traceExporter,
		Endpoint:    config.Get(config.KeyTraceEndpoint),
		ServiceName: branding.CLIName(),
		Writer:      cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	return nil
}

func teardown(cmd *cobra.Command, _ []string) error {
	if provider == nil {
		return nil
	}
	if err := provider.Shutdown(context.WithoutCancel(cmd.Context())); err != nil {
		logger.Warn("flushing traces", "err", err)
	}
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)),
		fang.WithNotifySignal(os.Interrupt),
	)
}
