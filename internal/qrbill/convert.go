// internal/qrbill/convert.go
package qrbill

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"

	"github.com/go-pdf/fpdf"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"mail-sender/internal/config"
	"mail-sender/internal/email"
)

// rasterScale supersamples the SVG view box before embedding, so the QR
// code stays scannable on a printed page.
const rasterScale = 4.0

// pageWidthMM is the width of the generated PDF page. QR bill payment
// parts are laid out for a full A4/A5 width.
const pageWidthMM = 210.0

// Converter turns the generator's SVG output into the attachment the
// caller expects. With FormatSVG the bytes pass through untouched; with
// FormatPDF the vector tree is rasterized onto a single fixed-size page.
// Everything happens on in-memory buffers, there is no temp-file staging.
type Converter struct {
	format config.Format
}

func NewConverter(format config.Format) *Converter {
	return &Converter{format: format}
}

func (c *Converter) Convert(svg []byte) (email.Attachment, error) {
	if c.format == config.FormatSVG {
		return email.Attachment{
			Filename:    "qrbill.svg",
			ContentType: "image/svg+xml",
			Bytes:       svg,
		}, nil
	}

	pdf, err := svgToPDF(svg)
	if err != nil {
		return email.Attachment{}, err
	}
	return email.Attachment{
		Filename:    "qrbill.pdf",
		ContentType: "application/pdf",
		Bytes:       pdf,
	}, nil
}

// svgToPDF parses the SVG, rasterizes it at print resolution and embeds
// the raster into a one-page PDF whose page keeps the SVG aspect ratio.
// The rasterizer does not render <text> elements; the generator outlines
// all text as paths, so a <text> node means the generator changed and the
// bill would silently lose content.
func svgToPDF(svg []byte) ([]byte, error) {
	if bytes.Contains(svg, []byte("<text")) {
		log.Printf("⚠️ [QRBILL] SVG contains <text> elements; the rasterizer skips them and the PDF will be missing that text")
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.WarnErrorMode)
	if err != nil {
		log.Printf("❌ [QRBILL] SVG parse failed: %v", err)
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	vbW, vbH := icon.ViewBox.W, icon.ViewBox.H
	if vbW <= 0 || vbH <= 0 {
		return nil, fmt.Errorf("parse svg: degenerate view box %.1fx%.1f", vbW, vbH)
	}

	w := int(vbW * rasterScale)
	h := int(vbH * rasterScale)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)

	icon.SetTarget(0, 0, float64(w), float64(h))
	icon.Draw(raster, 1.0)

	var rasterBuf bytes.Buffer
	if err := png.Encode(&rasterBuf, img); err != nil {
		return nil, fmt.Errorf("encode raster: %w", err)
	}

	pageW := pageWidthMM
	pageH := pageWidthMM * vbH / vbW

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	doc.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("qrbill", opts, &rasterBuf)
	doc.ImageOptions("qrbill", 0, 0, pageW, pageH, false, opts, 0, "")

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		log.Printf("❌ [QRBILL] PDF conversion failed: %v", err)
		return nil, fmt.Errorf("convert svg to pdf: %w", err)
	}

	log.Printf("✅ [QRBILL] Converted %.0fx%.0f SVG into %d byte PDF", vbW, vbH, out.Len())
	return out.Bytes(), nil
}
