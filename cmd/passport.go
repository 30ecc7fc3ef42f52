package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tryalma/doccheck/internal/mrz"
)

var passportCmd = &cobra.Command{
	Use:   "passport <image>",
	Short: "Decode the machine-readable zone of a passport image",
	Long:  "Runs the deterministic extraction path only: OCRs the image, locates the machine-readable zone, parses it, and reports the fields with per-check-digit validity. No vision calls are made.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		decoder := mrz.NewDecoder(cfg.MRZ.TesseractPath)
		rec, err := decoder.DecodeImage(ctx, args[0])
		if err != nil {
			return err
		}

		if !rec.Valid {
			zap.L().Warn("check digit validation failed", zap.String("image", args[0]))
		}

		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(passportCmd)
}
