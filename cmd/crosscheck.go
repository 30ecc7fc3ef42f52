package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tryalma/doccheck/internal/extract"
	"github.com/tryalma/doccheck/internal/model"
)

var crosscheckDocType string

var crosscheckCmd = &cobra.Command{
	Use:   "crosscheck <image>",
	Short: "Extract a document with both sources and cross-validate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		orch, err := buildOrchestrator()
		if err != nil {
			return err
		}

		result := orch.Run(ctx, extract.Input{
			ImagePath:    args[0],
			DocumentType: crosscheckDocType,
		})

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		// Exit nonzero only when neither source could read the document;
		// partial results are success-with-warnings.
		if result.Status == model.StatusError {
			os.Exit(3)
		}
		return nil
	},
}

func init() {
	crosscheckCmd.Flags().StringVar(&crosscheckDocType, "type", "passport", "document type hint (passport, g28)")
	rootCmd.AddCommand(crosscheckCmd)
}
