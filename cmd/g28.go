package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tryalma/doccheck/internal/g28"
)

var g28Cmd = &cobra.Command{
	Use:   "g28 <image>",
	Short: "Extract attorney and client fields from a G-28 form image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		provider, err := buildVisionProvider()
		if err != nil {
			return err
		}

		result, err := g28.NewParser(provider).Parse(ctx, args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(g28Cmd)
}
