package resolve

import (
	"bytes"
	"encoding/base64"
	"strings"
)

// minImagePayloadLength is a cheap sanity bound on the encoded payload,
// not a content validation. Anything shorter cannot be a real screenshot.
const minImagePayloadLength = 100

// NormalizeImage strips any data-URI prefix from a base64 image payload and
// determines the image format, preferring the declared format and falling
// back to magic-byte sniffing. Rejects implausibly short payloads.
func NormalizeImage(payload, declaredFormat string) (data string, format string, err *Error) {
	data = strings.TrimSpace(payload)

	// data:image/png;base64,AAAA... → AAAA...
	if strings.HasPrefix(data, "data:") {
		if idx := strings.Index(data, ","); idx >= 0 {
			data = data[idx+1:]
		}
	}

	if len(data) < minImagePayloadLength {
		return "", "", &Error{
			Stage:   StageImage,
			Message: "image payload is too short to be a valid screenshot",
		}
	}

	format = strings.ToLower(strings.TrimSpace(declaredFormat))
	if format == "jpg" {
		format = "jpeg"
	}
	if format == "" {
		format = sniffImageFormat(data)
	}

	return data, format, nil
}

// sniffImageFormat infers the image format from magic bytes at the start of
// the decoded payload. Defaults to png when the signature is unrecognized.
func sniffImageFormat(b64 string) string {
	// 24 base64 chars cover the first 16 raw bytes, enough for any signature.
	head := b64
	if len(head) > 24 {
		head = head[:24]
	}

	raw, err := base64.StdEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(head, "="))
	if err != nil || len(raw) < 12 {
		return "png"
	}

	switch {
	case bytes.HasPrefix(raw, []byte("\x89PNG")):
		return "png"
	case bytes.HasPrefix(raw, []byte("\xff\xd8\xff")):
		return "jpeg"
	case bytes.HasPrefix(raw, []byte("GIF8")):
		return "gif"
	case bytes.HasPrefix(raw, []byte("RIFF")) && bytes.Equal(raw[8:12], []byte("WEBP")):
		return "webp"
	default:
		return "png"
	}
}
