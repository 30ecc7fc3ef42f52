package mrz

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// mrzLine matches a full OCR line consisting only of MRZ alphabet
// characters at one of the two standard widths.
var mrzLine = regexp.MustCompile(`^[A-Z0-9<]{30}$|^[A-Z0-9<]{44}$`)

// Decoder OCRs a document image and locates the machine-readable zone in
// the output. The tesseract binary is invoked per call; the decoder holds
// no state and is safe for concurrent use.
type Decoder struct {
	binPath string
}

// NewDecoder creates a Decoder. If binPath is empty, "tesseract" is used.
func NewDecoder(binPath string) *Decoder {
	if binPath == "" {
		binPath = "tesseract"
	}
	return &Decoder{binPath: binPath}
}

// DecodeImage runs OCR restricted to the MRZ alphabet and parses the zone.
func (d *Decoder) DecodeImage(ctx context.Context, imagePath string) (*Record, error) {
	raw, err := d.ocr(ctx, imagePath)
	if err != nil {
		return nil, err
	}
	zone, err := LocateZone(raw)
	if err != nil {
		return nil, err
	}
	return Parse(zone)
}

// ocr shells out to tesseract with a single-block page segmentation and the
// MRZ character whitelist.
func (d *Decoder) ocr(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, d.binPath, imagePath, "stdout",
		"--psm", "6",
		"-c", "tessedit_char_whitelist=ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789<",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "mrz: tesseract failed for %s: %s", imagePath, stderr.String())
	}
	return stdout.String(), nil
}

// LocateZone scans OCR output for consecutive MRZ-shaped lines and returns
// them joined by newlines: the trailing 2x44 or 3x30 block wins, since the
// zone sits at the bottom of the document.
func LocateZone(ocrText string) (string, error) {
	var candidates []string
	for _, line := range strings.Split(ocrText, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, " ", ""))
		if mrzLine.MatchString(line) {
			candidates = append(candidates, line)
		}
	}

	// The zone sits at the bottom of the document, so scan windows from the
	// end: a 3x30 block first (TD1), then a 2x44 block (TD3).
	for end := len(candidates); end >= 3; end-- {
		w := candidates[end-3 : end]
		if len(w[0]) == 30 && len(w[1]) == 30 && len(w[2]) == 30 {
			return strings.Join(w, "\n"), nil
		}
	}
	for end := len(candidates); end >= 2; end-- {
		w := candidates[end-2 : end]
		if len(w[0]) == 44 && len(w[1]) == 44 {
			return strings.Join(w, "\n"), nil
		}
	}
	return "", eris.New("mrz: no machine-readable zone found in OCR output")
}
