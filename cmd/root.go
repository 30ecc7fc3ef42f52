package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tryalma/doccheck/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "doccheck",
	Short: "Identity-document extraction with dual-source cross-validation",
	Long:  "Extracts structured fields from passports and G-28 forms via MRZ decoding and vision-model calls, cross-validates the two sources into a confidence-scored record, and optionally populates a downstream web form.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
