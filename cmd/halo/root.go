package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/halo/apsp"
	"github.com/katalvlaran/halo/matmul"
	"github.com/katalvlaran/halo/partition"
	"github.com/katalvlaran/halo/stencil"
	"github.com/katalvlaran/halo/workgraph"
)

// configErrors are failures caused by the invocation itself; they are
// reported together with the usage text.
var configErrors = []error{
	partition.ErrInvalidWorkers,
	partition.ErrInvalidPartition,
	stencil.ErrOptionViolation,
	apsp.ErrOptionViolation,
	matmul.ErrOptionViolation,
	workgraph.ErrOptionViolation,
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	v   *viper.Viper
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("halo")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "halo",
		Short: "Distributed relaxation engines over row-partitioned grids",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().String("config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	a.bind(root.PersistentFlags(), "")

	root.AddCommand(a.stretchCmd(), a.apspCmd(), a.workgraphCmd(), a.mmCmd())

	return root
}

// bind registers every flag in fs with viper under prefix.flag-name.
func (a *app) bind(fs *pflag.FlagSet, prefix string) {
	fs.VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if prefix != "" {
			key = prefix + "." + f.Name
		}
		_ = a.v.BindPFlag(key, f)
	})
}

// setup loads .env and the config file, then builds the stderr logger.
func (a *app) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(".env: %w", err)
	}
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(a.v.GetString("log-level"))); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return nil
}

// isConfigError reports whether err stems from bad arguments or options
// rather than from I/O or input data.
func isConfigError(err error) bool {
	var num *strconv.NumError
	if errors.As(err, &num) {
		return true
	}
	for _, target := range configErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// usageOnConfigError wraps a RunE so usage is printed only for
// configuration errors; I/O and data errors print the error alone.
func usageOnConfigError(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		cmd.SilenceUsage = err == nil || !isConfigError(err)

		return err
	}
}
