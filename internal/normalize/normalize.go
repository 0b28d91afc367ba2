// Package normalize converts an uploaded receipt file (JPEG, PNG, or PDF)
// into a canonical, size-bounded JPEG buffer suitable for transmission to a
// vision model. The transformation is deterministic for identical input
// bytes and content type.
package normalize

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
)

const (
	// maxDimension bounds the longest edge of the output image. Receipts
	// remain legible at this size while keeping upload payloads and remote
	// service cost down.
	maxDimension = 2048
	// pdfDPI is the rasterization resolution for the first PDF page.
	pdfDPI = 200
	// jpegQuality is the fixed re-encode quality.
	jpegQuality = 90
)

// Accepted upload media types.
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypePDF  = "application/pdf"
)

// ConversionError reports that an uploaded file could not be converted:
// unreadable or corrupt data, a zero-page PDF, or an unsupported media type.
// It is fatal for the current ingestion; the stage produces no partial
// output.
type ConversionError struct {
	Err error
	Msg string
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conversion failed: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("conversion failed: %s", e.Msg)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Normalize converts raw upload bytes into a JPEG buffer: embedded
// orientation metadata is applied so the visual content is upright, the
// image is flattened to 3-channel color, the longest edge is capped at
// maxDimension with Lanczos resampling, and the result is re-encoded at
// fixed quality.
func Normalize(data []byte, contentType string) ([]byte, error) {
	if len(data) == 0 {
		return nil, &ConversionError{Msg: "empty file"}
	}

	var img image.Image
	var err error

	switch contentType {
	case ContentTypePDF:
		img, err = rasterizeFirstPage(data)
		if err != nil {
			return nil, err
		}
	case ContentTypeJPEG, ContentTypePNG:
		// AutoOrientation applies the EXIF orientation tag during decode so
		// camera rotation never reaches the vision model.
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
		if err != nil {
			return nil, &ConversionError{Msg: "failed to decode image", Err: err}
		}
	default:
		return nil, &ConversionError{Msg: fmt.Sprintf("unsupported content type %q", contentType)}
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	// Clone flattens any alpha or grayscale source into plain color; JPEG
	// encoding then yields a uniform 3-channel result.
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Clone(img), imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, &ConversionError{Msg: "failed to encode JPEG", Err: err}
	}

	return buf.Bytes(), nil
}

// rasterizeFirstPage renders only the first PDF page at pdfDPI.
func rasterizeFirstPage(data []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, &ConversionError{Msg: "failed to open PDF", Err: err}
	}
	defer func() { _ = doc.Close() }()

	if doc.NumPage() == 0 {
		return nil, &ConversionError{Msg: "PDF produced no pages"}
	}

	img, err := doc.ImageDPI(0, pdfDPI)
	if err != nil {
		return nil, &ConversionError{Msg: "failed to rasterize PDF page", Err: err}
	}

	return img, nil
}
