// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Letter page in points.
const (
	pageWidth  = 612.0
	pageHeight = 792.0
	pageMargin = 36.0
)

// ImageConverter places a single image on a letter page, scaled to fit
// inside the margins while keeping its aspect ratio.
type ImageConverter struct{}

// Convert renders the image at inputPath to a one-page PDF.
func (ImageConverter) Convert(_ context.Context, inputPath, outputPath string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(inputPath)), ".")
	if ext == "jpeg" {
		ext = "jpg"
	}

	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.AddPage()

	opts := gofpdf.ImageOptions{ImageType: ext, ReadDpi: true}
	info := doc.RegisterImageOptions(inputPath, opts)
	if doc.Err() {
		return fmt.Errorf("reading image %s: %w", filepath.Base(inputPath), doc.Error())
	}

	maxW := pageWidth - 2*pageMargin
	maxH := pageHeight - 2*pageMargin
	w, h := info.Extent()
	scale := 1.0
	if w > maxW {
		scale = maxW / w
	}
	if h*scale > maxH {
		scale = maxH / h
	}
	w *= scale
	h *= scale

	x := (pageWidth - w) / 2
	y := (pageHeight - h) / 2
	doc.ImageOptions(inputPath, x, y, w, h, false, opts, 0, "")

	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
