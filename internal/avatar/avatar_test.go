package avatar

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// pngBase64 renders a w x h PNG with some non-uniform content and
// returns it base64 encoded.
func pngBase64(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), uint8((x + y) % 256), 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare base64", "aGVsbG8=", "aGVsbG8="},
		{"png data uri", "data:image/png;base64,aGVsbG8=", "aGVsbG8="},
		{"jpeg data uri", "data:image/jpeg;base64,aGVsbG8=", "aGVsbG8="},
		{"surrounding whitespace", "  aGVsbG8=\n", "aGVsbG8="},
		{"empty", "", ""},
		{"prefix only", "data:image/png;base64,", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProcessRejectsBadPayloads(t *testing.T) {
	if _, err := Process(""); err == nil {
		t.Error("Process(empty) = ok, want error")
	}
	if _, err := Process("data:image/png;base64,"); err == nil {
		t.Error("Process(prefix only) = ok, want error")
	}
	if _, err := Process("not*base64!"); err == nil {
		t.Error("Process(invalid base64) = ok, want error")
	}
}

func TestProcessKeepsSmallImage(t *testing.T) {
	in := pngBase64(t, 40, 40)
	out, err := Process("data:image/png;base64," + in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	data, err := base64.StdEncoding.DecodeString(out)
	if err != nil {
		t.Fatalf("output is not base64: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable image: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("small image resized to %dx%d, want 40x40", b.Dx(), b.Dy())
	}
}

func TestProcessDownscalesLargeImage(t *testing.T) {
	in := pngBase64(t, 1200, 900)
	out, err := Process(in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	data, err := base64.StdEncoding.DecodeString(out)
	if err != nil {
		t.Fatalf("output is not base64: %v", err)
	}
	if len(data) > sizeLimit {
		t.Errorf("output size = %d, want <= %d", len(data), sizeLimit)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable image: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("output format = %q, want jpeg", format)
	}
	b := img.Bounds()
	if b.Dx() > maxSide || b.Dy() > maxSide {
		t.Errorf("output dimensions %dx%d exceed max side %d", b.Dx(), b.Dy(), maxSide)
	}
	// Aspect ratio 4:3 preserved within rounding.
	if b.Dx() != maxSide {
		t.Errorf("longest side = %d, want %d", b.Dx(), maxSide)
	}
}

func TestProcessPassesThroughNonImage(t *testing.T) {
	in := base64.StdEncoding.EncodeToString([]byte("just some text"))
	out, err := Process(in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out != in {
		t.Errorf("non-image payload rewritten: got %q, want %q", out, in)
	}
}

func TestDataURI(t *testing.T) {
	if got := DataURI(""); got != "" {
		t.Errorf("DataURI(empty) = %q, want empty", got)
	}
	if got := DataURI("aGVsbG8="); got != "data:image/png;base64,aGVsbG8=" {
		t.Errorf("DataURI() = %q", got)
	}
}
