package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Tesseract implements the Backend interface by shelling out to the tesseract
// binary. Recognition runs entirely locally.
type Tesseract struct {
	binaryPath string
	language   string
	timeout    time.Duration
}

// NewTesseract creates a new Tesseract Backend instance
func NewTesseract(binaryPath, language string) (*Tesseract, error) {
	if binaryPath == "" {
		binaryPath = "tesseract"
	}
	if language == "" {
		language = "eng"
	}

	if _, err := exec.LookPath(binaryPath); err != nil {
		return nil, fmt.Errorf("locating tesseract binary: %w", err)
	}

	return &Tesseract{
		binaryPath: binaryPath,
		language:   language,
		timeout:    30 * time.Second,
	}, nil
}

// RecognizeText runs tesseract over the image and returns the raw text
func (t *Tesseract) RecognizeText(imageData []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	// Normalize to PNG so tesseract never sees PDFs or HEIC
	pngData, err := normalizeToPNG(imageData, contentType)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, t.binaryPath, "stdin", "stdout", "-l", t.language)
	cmd.Stdin = bytes.NewReader(pngData)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", fmt.Errorf("tesseract produced no text")
	}

	return text, nil
}

// Close closes the Tesseract backend (no-op for an external binary)
func (t *Tesseract) Close() error {
	return nil
}
