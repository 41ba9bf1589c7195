package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dfguard/dfguard/internal/adapters/outbound/config"
	"github.com/dfguard/dfguard/internal/adapters/outbound/loader"
	"github.com/dfguard/dfguard/internal/application"
	"github.com/dfguard/dfguard/internal/logging"
)

// envPrefix namespaces environment overrides, e.g. DFGUARD_LOG_LEVEL.
const envPrefix = "DFGUARD"

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "dfguard",
		Short: "Catch bad data before it ships",
		Long: "dfguard profiles tabular datasets (CSV, Parquet, XLSX) and runs structural, " +
			"quality and numeric rules against them, producing a report with an OK, WARNING or ERROR status.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("log-level", "", "Diagnostic log level: debug, info, warn, error (env DFGUARD_LOG_LEVEL)")
	flags.String("log-format", "", "Diagnostic log format: text or json (env DFGUARD_LOG_FORMAT)")
	flags.Int("max-rows", 0, "Maximum number of CSV rows to read (env DFGUARD_MAX_ROWS, default from config)")
	for _, name := range []string{"log-level", "log-format", "max-rows"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd(v))
	cmd.AddCommand(newWatchCmd(v))
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newMCPCmd(v))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command until ctx is cancelled.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newService wires the validation pipeline for a command invocation.
// Log settings come from flags or the environment, then from the config
// file in the working directory.
func newService(cmd *cobra.Command, v *viper.Viper) (*application.ValidateService, *logrus.Logger, error) {
	cfgLoader := config.New(".")
	cfg, err := cfgLoader.Load(".")
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	level := v.GetString("log-level")
	if level == "" {
		level = cfg.Log.Level
	}
	format := v.GetString("log-format")
	if format == "" {
		format = cfg.Log.Format
	}
	logger := logging.New(level, format, cmd.ErrOrStderr())

	return application.NewValidateService(loader.New(), cfgLoader, nil, logger), logger, nil
}

func validateOptions(v *viper.Viper, progress bool) application.ValidateOptions {
	return application.ValidateOptions{
		MaxRows:  v.GetInt("max-rows"),
		Progress: progress,
	}
}
