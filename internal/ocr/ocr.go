package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"screenguard/internal/config"
	"screenguard/internal/domain"
)

// Extractor runs the tesseract binary over a staged screenshot and returns
// its best-effort transcription. It performs no preprocessing of its own;
// engine mode and page segmentation are passed through as fixed parameters.
type Extractor struct {
	cfg    config.OCRConfig
	runner Runner
}

// NewExtractor creates an Extractor with defaults filled in.
func NewExtractor(cfg config.OCRConfig) *Extractor {
	return newExtractor(cfg, execRunner{})
}

// NewExtractorWithRunner creates an Extractor with a custom command runner
// (for testing).
func NewExtractorWithRunner(cfg config.OCRConfig, runner Runner) *Extractor {
	return newExtractor(cfg, runner)
}

func newExtractor(cfg config.OCRConfig, runner Runner) *Extractor {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Languages == "" {
		cfg.Languages = "eng+ind"
	}
	if cfg.OEM == 0 {
		cfg.OEM = 3
	}
	if cfg.PSM == 0 {
		cfg.PSM = 6
	}
	return &Extractor{cfg: cfg, runner: runner}
}

// ExtractText transcribes the image at imagePath.
//
// Failure mapping: a missing image file yields domain.ErrImageNotFound, a
// missing tesseract binary yields domain.ErrOCREngineUnavailable, and any
// other engine failure yields domain.ErrOCRFailed with the engine's stderr.
func (e *Extractor) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if _, err := os.Stat(imagePath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrImageNotFound, imagePath)
		}
		return "", fmt.Errorf("%w: stat %s: %v", domain.ErrOCRFailed, imagePath, err)
	}

	// tesseract <file> stdout -l <langs> --oem <n> --psm <n>
	args := []string{
		imagePath, "stdout",
		"-l", e.cfg.Languages,
		"--oem", strconv.Itoa(e.cfg.OEM),
		"--psm", strconv.Itoa(e.cfg.PSM),
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Binary, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %q not found in PATH", domain.ErrOCREngineUnavailable, e.cfg.Binary)
		}
		detail := strings.TrimSpace(string(errb))
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("%w: %s", domain.ErrOCRFailed, detail)
	}

	return string(out), nil
}
