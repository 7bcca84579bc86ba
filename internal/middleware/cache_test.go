package middleware

import (
	"bytes"
	"net/http"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{
		"Content-Type": {"application/json"},
		"X-Custom":     {"a", "b"},
	}
	body := []byte(`{"items":[]}`)

	encoded, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload() error = %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(encoded)
	if !ok {
		t.Fatal("decodePayload() failed")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := gotHdr["X-Custom"]; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("X-Custom = %v", got)
	}
	if !bytes.Equal(gotBody, body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestPayloadEmptyBody(t *testing.T) {
	encoded, err := encodePayload(http.StatusNoContent, http.Header{}, nil)
	if err != nil {
		t.Fatalf("encodePayload() error = %v", err)
	}
	status, _, body, ok := decodePayload(encoded)
	if !ok {
		t.Fatal("decodePayload() failed")
	}
	if status != http.StatusNoContent {
		t.Errorf("status = %d, want 204", status)
	}
	if len(body) != 0 {
		t.Errorf("body = %q, want empty", body)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("short"),
		// Header length pointing past the end of the payload.
		{0, 0, 0, 200, 0, 0, 255, 255, 'x'},
	}
	for i, bs := range cases {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Errorf("case %d: decodePayload() = ok, want failure", i)
		}
	}
}
