// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/agentrynetwork/agentry/internal/core/execute"
	"gitlab.com/agentrynetwork/agentry/internal/database"
	"gitlab.com/agentrynetwork/agentry/internal/logging"
	"gitlab.com/agentrynetwork/agentry/pkg/database/keyvalue/badger"
)

var currentUser = func() *user.User {
	usr, err := user.Current()
	if err != nil {
		log.Fatal(err)
	}
	return usr
}()

var defaultWorkDir = filepath.Join(currentUser.HomeDir, ".agentry")

// Config is the daemon configuration, loadable from flags, environment
// variables (AGENTRYD_*), or agentryd.toml in the working directory.
type Config struct {
	WorkDir   string `mapstructure:"work-dir" validate:"required"`
	LogLevel  string `mapstructure:"log-level" validate:"required"`
	LogFormat string `mapstructure:"log-format" validate:"oneof=plain json"`
}

var cmdMain = &cobra.Command{
	Use:   "agentryd",
	Short: "Agentry record registry daemon",
	Run:   printUsageAndExit1,
}

func init() {
	flags := cmdMain.PersistentFlags()
	flags.StringP("work-dir", "w", defaultWorkDir, "Working directory for configuration and data")
	flags.String("log-level", "info", "Log level")
	flags.String("log-format", "plain", "Log format (plain or json)")
	check(viper.BindPFlags(flags))
}

func main() {
	_ = cmdMain.Execute()
}

func loadConfig() *Config {
	viper.SetConfigName("agentryd")
	viper.SetEnvPrefix("AGENTRYD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.AddConfigPath(viper.GetString("work-dir"))
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fatalf("read config: %v", err)
		}
	}

	cfg := new(Config)
	check(viper.Unmarshal(cfg))
	check(validator.New().Struct(cfg))
	return cfg
}

func newLogger(cfg *Config) zerolog.Logger {
	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	check(err)
	return logger
}

// openDatabase opens the Badger-backed record database in the working
// directory.
func openDatabase(cfg *Config, logger zerolog.Logger) (*database.Database, func()) {
	store, err := badger.New(filepath.Join(cfg.WorkDir, "data"), logger)
	check(err)
	return database.New(store, logger), func() { _ = store.Close() }
}

func newExecutor(db *database.Database, logger zerolog.Logger) *execute.Executor {
	x, err := execute.NewExecutor(execute.Options{Database: db, Logger: logger})
	check(err)
	return x
}

func printUsageAndExit1(cmd *cobra.Command, args []string) {
	_ = cmd.Usage()
	os.Exit(1)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func check(err error) {
	if err != nil {
		fatalf("%v", err)
	}
}
