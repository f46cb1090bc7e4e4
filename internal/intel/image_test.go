package intel

import (
	"strings"
	"testing"
)

// "iVBORw0KGgo" is the base64 encoding of the PNG magic bytes.
const pngBase64Head = "iVBORw0KGgo"

func TestDetectImageDataURI(t *testing.T) {
	payload, ok := DetectImage("data:image/png;base64," + pngBase64Head + strings.Repeat("A", 40))
	if !ok {
		t.Fatal("data URI not detected")
	}
	if payload.MediaType != "image/png" {
		t.Errorf("media type = %q, want image/png", payload.MediaType)
	}
	if !strings.HasPrefix(payload.DataURI, "data:image/png;base64,") {
		t.Errorf("data uri = %q", payload.DataURI)
	}
}

func TestDetectImageRawBase64(t *testing.T) {
	tests := []struct {
		name string
		text string
		mime string
	}{
		{"png", pngBase64Head + strings.Repeat("A", 100), "image/png"},
		{"jpeg", "/9j/" + strings.Repeat("4AAQ", 30), "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, ok := DetectImage(tt.text)
			if !ok {
				t.Fatal("raw base64 image not detected")
			}
			if payload.MediaType != tt.mime {
				t.Errorf("media type = %q, want %q", payload.MediaType, tt.mime)
			}
		})
	}
}

func TestDetectImageRejectsText(t *testing.T) {
	inputs := []string{
		"",
		"your account is blocked, verify now",
		"aGVsbG8=", // short base64, decodes to "hello"
		strings.Repeat("A", 120),                 // long base64, no image magic
		"data:image/png;base64,not/valid@base64",
		"data:text/plain;base64," + pngBase64Head,
	}
	for _, text := range inputs {
		if _, ok := DetectImage(text); ok {
			t.Errorf("DetectImage(%.40q) = true, want false", text)
		}
	}
}
