package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tryalma/doccheck/internal/extract"
	"github.com/tryalma/doccheck/internal/model"
)

var (
	batchConcurrency int
	batchOutDir      string
	batchDocType     string
)

// imageExts are the upload formats the vision providers accept.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Cross-check every document image in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, err := buildOrchestrator()
		if err != nil {
			return err
		}

		images, err := listImages(args[0])
		if err != nil {
			return err
		}
		if len(images) == 0 {
			zap.L().Info("no document images found", zap.String("dir", args[0]))
			return nil
		}

		if batchOutDir != "" {
			if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
				return eris.Wrap(err, "batch: create output dir")
			}
		}

		zap.L().Info("processing batch",
			zap.Int("documents", len(images)),
			zap.Int("concurrency", batchConcurrency),
		)

		g, gctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(batchConcurrency)

		var succeeded, partial, failed atomic.Int64

		for _, path := range images {
			g.Go(func() error {
				log := zap.L().With(zap.String("document", path))

				result := orch.Run(gctx, extract.Input{
					ImagePath:    path,
					DocumentType: batchDocType,
				})

				switch result.Status {
				case model.StatusSuccess:
					succeeded.Add(1)
				case model.StatusPartial:
					partial.Add(1)
				default:
					failed.Add(1)
					log.Error("cross-check failed",
						zap.String("mrz_error", result.Errors.SourceA),
						zap.String("vision_error", result.Errors.SourceB),
					)
					return nil // don't abort batch on individual failure
				}

				log.Info("cross-check complete",
					zap.String("status", string(result.Status)),
					zap.Float64("confidence", result.DocumentConfidence),
					zap.Int("discrepancies", len(result.Discrepancies)),
				)

				if batchOutDir != "" {
					if err := writeResult(batchOutDir, path, result); err != nil {
						log.Warn("failed to write result file", zap.Error(err))
					}
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "batch processing")
		}

		zap.L().Info("batch complete",
			zap.Int64("succeeded", succeeded.Load()),
			zap.Int64("partial", partial.Load()),
			zap.Int64("failed", failed.Load()),
		)
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "max documents processed at once")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "directory for per-document result JSON (optional)")
	batchCmd.Flags().StringVar(&batchDocType, "type", "passport", "document type hint for all images")
	rootCmd.AddCommand(batchCmd)
}

// listImages returns the document images directly under dir, sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrap(err, "batch: read directory")
	}
	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}
	return images, nil
}

// writeResult stores one result as <out>/<image-stem>.json.
func writeResult(outDir, imagePath string, result model.CrossCheckResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	return os.WriteFile(filepath.Join(outDir, stem+".json"), data, 0o644)
}
