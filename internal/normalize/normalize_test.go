package normalize

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage fills a gradient so resampling has real content to work on.
func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), uint8((x + y) % 256), 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}))
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeOutput(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format, "output is always JPEG")
	return img
}

func TestNormalizeSmallJPEGKeepsDimensions(t *testing.T) {
	in := encodeJPEG(t, testImage(640, 480))

	out, err := Normalize(in, ContentTypeJPEG)
	require.NoError(t, err)

	img := decodeOutput(t, out)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestNormalizePNGBecomesJPEG(t *testing.T) {
	// PNG with an alpha channel must flatten to plain color.
	src := testImage(300, 200)
	for y := 0; y < 200; y++ {
		for x := 0; x < 300; x++ {
			c := src.RGBAAt(x, y)
			c.A = 128
			src.SetRGBA(x, y, c)
		}
	}
	in := encodePNG(t, src)

	out, err := Normalize(in, ContentTypePNG)
	require.NoError(t, err)

	img := decodeOutput(t, out)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestNormalizeDownscalesLongEdge(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{"wide", 4096, 1024, 2048, 512},
		{"tall", 1000, 4000, 512, 2048},
		{"square", 3000, 3000, 2048, 2048},
		{"boundary stays put", 2048, 100, 2048, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := encodeJPEG(t, testImage(tt.w, tt.h))

			out, err := Normalize(in, ContentTypeJPEG)
			require.NoError(t, err)

			img := decodeOutput(t, out)
			assert.Equal(t, tt.wantW, img.Bounds().Dx())
			assert.Equal(t, tt.wantH, img.Bounds().Dy())
		})
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	in := encodeJPEG(t, testImage(800, 600))

	first, err := Normalize(in, ContentTypeJPEG)
	require.NoError(t, err)
	second, err := Normalize(in, ContentTypeJPEG)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// exifOrientation6JPEG prepends an EXIF APP1 segment declaring orientation 6
// (rotate 90° clockwise to display upright) to an otherwise plain JPEG.
func exifOrientation6JPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	plain := encodeJPEG(t, img)
	require.True(t, bytes.HasPrefix(plain, []byte{0xFF, 0xD8}))

	tiff := []byte{
		'I', 'I', 0x2A, 0x00, // little-endian TIFF header
		0x08, 0x00, 0x00, 0x00, // offset to IFD0
		0x01, 0x00, // one IFD entry
		0x12, 0x01, 0x03, 0x00, // tag 0x0112 (orientation), type SHORT
		0x01, 0x00, 0x00, 0x00, // count 1
		0x06, 0x00, 0x00, 0x00, // value 6
		0x00, 0x00, 0x00, 0x00, // no next IFD
	}
	app1 := append([]byte("Exif\x00\x00"), tiff...)
	segLen := len(app1) + 2

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1, byte(segLen >> 8), byte(segLen)})
	buf.Write(app1)
	buf.Write(plain[2:])
	return buf.Bytes()
}

func TestNormalizeAppliesEXIFOrientation(t *testing.T) {
	in := exifOrientation6JPEG(t, testImage(400, 300))

	out, err := Normalize(in, ContentTypeJPEG)
	require.NoError(t, err)

	// Orientation 6 swaps the displayed axes.
	img := decodeOutput(t, out)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

// zeroPagePDF builds a structurally valid PDF whose page tree is empty, so
// opening it succeeds but there is no page to rasterize.
func zeroPagePDF() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	off1 := buf.Len()
	buf.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	off2 := buf.Len()
	buf.WriteString("2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\n")
	startxref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 3\n0000000000 65535 f \n%010d 00000 n \n%010d 00000 n \n", off1, off2)
	buf.WriteString("trailer\n<< /Size 3 /Root 1 0 R >>\nstartxref\n")
	fmt.Fprintf(&buf, "%d\n%%%%EOF\n", startxref)
	return buf.Bytes()
}

func TestNormalizeZeroPagePDF(t *testing.T) {
	_, err := Normalize(zeroPagePDF(), ContentTypePDF)
	require.Error(t, err)
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Contains(t, convErr.Error(), "no pages")
}

func TestNormalizeErrors(t *testing.T) {
	validJPEG := encodeJPEG(t, testImage(10, 10))

	tests := []struct {
		name        string
		data        []byte
		contentType string
	}{
		{"empty data", nil, ContentTypeJPEG},
		{"corrupt JPEG", []byte("\xFF\xD8not really an image"), ContentTypeJPEG},
		{"corrupt PNG", []byte("\x89PNG\r\nbroken"), ContentTypePNG},
		{"corrupt PDF", []byte("%PDF-1.4 truncated garbage"), ContentTypePDF},
		{"unsupported type", validJPEG, "image/gif"},
		{"blank type", validJPEG, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.data, tt.contentType)
			require.Error(t, err)
			var convErr *ConversionError
			assert.ErrorAs(t, err, &convErr)
		})
	}
}
