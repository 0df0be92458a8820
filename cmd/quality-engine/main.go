// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the quality-engine CLI. It wires the
// analysis core and the SQLite record store into subcommands: analyze,
// batch, duplicates, records, and export.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quality-engine/internal/storage"
	"github.com/pdiddy/quality-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the quality-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "quality-engine",
	Short: "Content-quality scoring and duplicate detection for submitted records",
	Long: `quality-engine scores user-submitted title+description records on
completeness, readability, engagement, uniqueness, and spam signals, and
detects clusters of near-duplicate records so moderators can merge or
reject redundant submissions.

Records live in a local SQLite store. Use "records import" to load them,
"analyze" or "batch" to compute quality metrics, "duplicates" to find
duplicate clusters, and "export" to dump computed metrics.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./quality-engine.yaml or ~/.config/quality-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "base directory for engine data (default: data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("quality-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "quality-engine"))
		}
	}

	viper.SetEnvPrefix("QUALITY_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("storage.data_dir", "data")
	viper.SetDefault("analysis.workers", 4)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig resolves the effective configuration from config file,
// environment, and flags.
func engineConfig(cmd *cobra.Command) types.EngineConfig {
	cfg := types.EngineConfig{
		Storage:  types.StorageConfig{DataDir: viper.GetString("storage.data_dir")},
		Analysis: types.AnalysisConfig{Workers: viper.GetInt("analysis.workers")},
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	return cfg
}

// openStore opens the SQLite store for the resolved configuration.
func openStore(cmd *cobra.Command) (*storage.Store, types.EngineConfig, error) {
	cfg := engineConfig(cmd)
	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		return nil, cfg, err
	}
	return store, cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
