// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the amsa CLI, a journal of questions
// you ask yourself and the answers you give over time.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/amsa/internal/logging"
	"github.com/pdiddy/amsa/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the amsa CLI. It only runs when no known
// subcommand matched, so it always reports a usage error.
var rootCmd = &cobra.Command{
	Use:   "amsa COMMAND your_amsa.json",
	Short: "Ask yourself anything, and keep your answers",
	Long: `amsa keeps a journal of questions you ask yourself, each with dated
answers, in a single JSON file. After every change it regenerates a
readable page listing the questions in the order they were asked.

Answering a question moves it to the back of the queue, so the questions
you have gone longest without answering come up first.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return &usageError{cmd: cmd, msg: "missing command"}
		}
		return &usageError{cmd: cmd, msg: fmt.Sprintf("Command %q does not exist", args[0])}
	},
}

func init() {
	cobra.EnableCaseInsensitive = true
	cobra.OnInitialize(initConfig)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{cmd: cmd, msg: err.Error()}
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./amsa.yaml or ~/.config/amsa/amsa.yaml)")
	flags.String("page-dir", "", "directory for the generated page (default: beside the journal)")
	flags.String("page-format", "markdown", "generated page format: markdown, html, or none")
	flags.Bool("no-index", false, "do not maintain the SQLite search index")
	flags.String("index-path", "", "search index database (default: journal path with .db extension)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "diagnostic level: debug, info, warn, error")

	for key, flag := range map[string]string{
		"page.dir":       "page-dir",
		"page.format":    "page-format",
		"index.disabled": "no-index",
		"index.path":     "index-path",
		"color.disabled": "no-color",
		"log.level":      "log-level",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}

	viper.SetDefault("date_format", "2006-01-02 15:04")
	viper.SetDefault("index.max_results", 20)
}

func initConfig() {
	// A missing .env is normal; only report files that exist but do not parse.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("amsa")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "amsa"))
		}
	}

	viper.SetEnvPrefix("AMSA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves settings from flags, environment, and config file.
func loadConfig() types.Config {
	dateFormat := viper.GetString("date_format")
	_, noColor := os.LookupEnv("NO_COLOR")

	return types.Config{
		Page: types.PageConfig{
			Dir:        viper.GetString("page.dir"),
			Format:     types.PageFormat(viper.GetString("page.format")),
			DateFormat: dateFormat,
		},
		Index: types.IndexConfig{
			Disabled:   viper.GetBool("index.disabled"),
			Path:       viper.GetString("index.path"),
			MaxResults: viper.GetInt("index.max_results"),
		},
		Workflow: types.WorkflowConfig{
			NoColor:    noColor || viper.GetBool("color.disabled"),
			DateFormat: dateFormat,
		},
		LogLevel: viper.GetString("log.level"),
	}
}

// setup returns the resolved config and a diagnostic logger writing to the
// command's error stream.
func setup(cmd *cobra.Command) (types.Config, *zap.Logger) {
	cfg := loadConfig()
	return cfg, logging.New(cfg.LogLevel, cmd.ErrOrStderr())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
