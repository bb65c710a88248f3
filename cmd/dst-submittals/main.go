// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dst-submittals CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the dst-submittals CLI.
var rootCmd = &cobra.Command{
	Use:   "dst-submittals",
	Short: "Assemble HVAC submittal packages from equipment documents",
	Long: `dst-submittals turns a directory of HVAC equipment documents into a single
organized submittal PDF. It extracts equipment tags (AHU-10, MAU-5) from
filenames or document content, groups documents by unit, renders everything
to PDF, strips pricing pages, and merges the result with per-unit title
pages and bookmarks.

Each stage is a subcommand: extract inspects tagging, structure reviews and
validates an edited document structure, and generate runs the full pipeline.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dst-submittals.yaml or ~/.config/dst-submittals/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dst-submittals")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dst-submittals"))
		}
	}

	viper.SetDefault("extraction.mode", string(types.ModeContent))
	viper.SetDefault("conversion.gotenberg_url", "http://localhost:3000")
	viper.SetDefault("conversion.timeout", "2m")
	viper.SetDefault("conversion.concurrency", 3)
	viper.SetDefault("conversion.work_dir", "output/converted")
	viper.SetDefault("conversion.auto_start", true)
	viper.SetDefault("assembly.filter_pricing", true)
	viper.SetDefault("assembly.title_pages_dir", "output/title_pages")
	viper.SetDefault("assembly.output_dir", "output")
	viper.SetDefault("history.dir", "output")
	viper.SetDefault("history.max_runs", 20)

	viper.SetEnvPrefix("DST_SUBMITTALS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage configurations from viper.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Extraction: types.ExtractionConfig{
			Mode:       types.ExtractionMode(viper.GetString("extraction.mode")),
			Vocabulary: viper.GetStringSlice("extraction.vocabulary"),
		},
		Conversion: types.ConversionConfig{
			GotenbergURL: viper.GetString("conversion.gotenberg_url"),
			Timeout:      viper.GetDuration("conversion.timeout"),
			Concurrency:  viper.GetInt("conversion.concurrency"),
			WorkDir:      viper.GetString("conversion.work_dir"),
			AutoStart:    viper.GetBool("conversion.auto_start"),
		},
		Assembly: types.AssemblyConfig{
			FilterPricing: viper.GetBool("assembly.filter_pricing"),
			TitlePagesDir: viper.GetString("assembly.title_pages_dir"),
			OutputDir:     viper.GetString("assembly.output_dir"),
		},
		History: types.HistoryConfig{
			Dir:     viper.GetString("history.dir"),
			MaxRuns: viper.GetInt("history.max_runs"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// durationFlag parses a duration flag value, falling back to def.
func durationFlag(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
