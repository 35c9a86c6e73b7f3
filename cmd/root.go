package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/frickiericker/latemp/internal/config"
	"github.com/frickiericker/latemp/internal/observability"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries the state shared by all subcommands of one root command.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
}

// NewRootCmd builds the command tree.  Each call returns an independent tree
// with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:           "latemp",
		Short:         "Lay out point chains and grids by minimizing pair and attractor potentials.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initializeConfig(); err != nil {
				return err
			}
			cfg, err := config.NewConfigFromViper(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("configuration loaded", zap.String("version", Version))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./latemp.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("trace-db", "", "sqlite database recording every descent step")
	a.v.BindPFlag("logger.level", root.PersistentFlags().Lookup("log-level"))
	a.v.BindPFlag("trace.db", root.PersistentFlags().Lookup("trace-db"))

	root.AddCommand(
		newChainCmd(a),
		newGridCmd(a),
		newLatitudeCmd(),
		newFillHolesCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		observability.Sync()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// initializeConfig reads the config file and LATEMP_ environment variables.
func (a *app) initializeConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("latemp")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("LATEMP")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// openTrace opens the configured trace database, or returns nil when
// tracing is disabled.
func (a *app) openTrace() (*sql.DB, error) {
	if a.cfg.Trace.DB == "" {
		return nil, nil
	}
	db, err := sql.Open("sqlite3", a.cfg.Trace.DB)
	if err != nil {
		return nil, fmt.Errorf("open trace db: %w", err)
	}
	return db, nil
}
