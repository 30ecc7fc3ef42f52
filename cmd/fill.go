package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/tryalma/doccheck/internal/formfill"
	"github.com/tryalma/doccheck/internal/model"
)

var (
	fillMappingPath string
	fillHeaded      bool
	fillPauseMs     int
)

var fillCmd = &cobra.Command{
	Use:   "fill <record.json>",
	Short: "Populate a mapped web form from an extraction record",
	Long:  "Reads a cross-check result (or a flat field object) from JSON and drives a headless browser through the form mapping, filling each mapped control that has a value.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mappingPath := fillMappingPath
		if mappingPath == "" {
			mappingPath = cfg.FormFill.MappingPath
		}
		if mappingPath == "" {
			return eris.New("fill: no form mapping configured (--mapping or formfill.mapping_path)")
		}

		mapping, err := formfill.LoadMapping(mappingPath)
		if err != nil {
			return err
		}

		fields, err := loadRecord(args[0])
		if err != nil {
			return err
		}

		filler := formfill.NewFiller(formfill.Options{
			Headless:   cfg.FormFill.Headless && !fillHeaded,
			FieldPause: time.Duration(fillPauseMs) * time.Millisecond,
		})

		report, err := filler.Populate(ctx, mapping, fields)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		if report.Failed > 0 {
			os.Exit(3)
		}
		return nil
	},
}

func init() {
	fillCmd.Flags().StringVar(&fillMappingPath, "mapping", "", "form mapping YAML (default from config)")
	fillCmd.Flags().BoolVar(&fillHeaded, "headed", false, "show the browser window")
	fillCmd.Flags().IntVar(&fillPauseMs, "pause-ms", 0, "settle time after each control")
	rootCmd.AddCommand(fillCmd)
}

// loadRecord accepts either a full cross-check result or a flat
// field-name-to-value object.
func loadRecord(path string) (model.FieldSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "fill: read record")
	}

	var result model.CrossCheckResult
	if err := json.Unmarshal(data, &result); err == nil && len(result.MergedFields) > 0 {
		return result.MergedFields, nil
	}

	var fields model.FieldSet
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, eris.Wrap(err, "fill: parse record")
	}
	if len(fields) == 0 {
		return nil, eris.New("fill: record contains no fields")
	}
	return fields, nil
}
