// Package avatar normalizes and compresses doctor avatar uploads.  The
// admin console submits avatars as base64 or data-URI strings; they are
// stored back as base64 after being downscaled and re-encoded so no row
// carries more than ~100KB of image data.
package avatar

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding for uploaded avatars
	"strings"

	"golang.org/x/image/draw"
)

const (
	// maxSide is the longest edge kept after downscaling.
	maxSide = 800
	// sizeLimit is the target upper bound for the encoded image.
	sizeLimit = 100 * 1024

	qualityStart = 90
	qualityStep  = 10
	qualityFloor = 40
)

// Normalize strips a data-URI prefix from an avatar payload and trims
// whitespace, returning the bare base64 string.  An empty result means
// there was no usable payload.
func Normalize(value string) string {
	value = strings.ReplaceAll(value, "data:image/png;base64,", "")
	value = strings.ReplaceAll(value, "data:image/jpeg;base64,", "")
	return strings.TrimSpace(value)
}

// Process validates and compresses an uploaded avatar.  It returns the
// base64 of the compressed image, or an error when the payload is not
// decodable base64.  Payloads that are valid base64 but not a decodable
// image are stored as-is, matching the directory's lenient historical
// behavior.
func Process(raw string) (string, error) {
	normalized := Normalize(raw)
	if normalized == "" {
		return "", fmt.Errorf("empty avatar payload")
	}
	decoded, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return "", fmt.Errorf("invalid base64 avatar: %w", err)
	}
	return base64.StdEncoding.EncodeToString(compressToLimit(decoded)), nil
}

// DataURI wraps a stored base64 avatar in the data-URI form the admin
// console renders directly.
func DataURI(b64 string) string {
	if b64 == "" {
		return ""
	}
	return "data:image/png;base64," + b64
}

// compressToLimit downscales the image so its longest side is at most
// maxSide and re-encodes it as JPEG, stepping quality down until the
// output fits sizeLimit or the quality floor is reached.  Bytes that do
// not decode as an image are returned unchanged.
func compressToLimit(data []byte) []byte {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if longest := max(w, h); longest > maxSide {
		ratio := float64(maxSide) / float64(longest)
		nw, nh := int(float64(w)*ratio), int(float64(h)*ratio)
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	for quality := qualityStart; ; quality -= qualityStep {
		buf.Reset()
		if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
			return data
		}
		if buf.Len() <= sizeLimit || quality-qualityStep < qualityFloor {
			break
		}
	}
	return buf.Bytes()
}
