// Package avatar converts local image files to the base64 data-URI strings
// the backend expects inside JSON create/update payloads. There is no
// separate binary upload channel.
package avatar

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// MaxFileSize caps the images embedded in a JSON body.
const MaxFileSize = 2 << 20

const prefix = "data:"

// EncodeFile reads an image file and returns it as a data URI.
func EncodeFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if len(raw) > MaxFileSize {
		return "", fmt.Errorf("avatar %s exceeds %d bytes", path, MaxFileSize)
	}
	mime := http.DetectContentType(raw)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("avatar %s is %s, want an image", path, mime)
	}
	return Encode(raw, mime), nil
}

// Encode wraps raw bytes in a data URI.
func Encode(raw []byte, mime string) string {
	return prefix + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

// Decode splits a data URI back into bytes and media type.
func Decode(uri string) ([]byte, string, error) {
	if !strings.HasPrefix(uri, prefix) {
		return nil, "", fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(uri[len(prefix):], ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI")
	}
	mime, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return nil, "", fmt.Errorf("unsupported data URI encoding %q", encoding)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URI: %w", err)
	}
	return raw, mime, nil
}

// IsDataURI reports whether the value looks like an embedded image rather
// than a plain URL.
func IsDataURI(value string) bool {
	return strings.HasPrefix(value, prefix)
}
