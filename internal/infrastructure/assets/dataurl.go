package assets

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// decodeDataURL extracts the payload of a "data:[<mediatype>][;base64],<data>" URL
func decodeDataURL(s string) (mediaType string, payload []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}

	meta, data, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing comma", ErrInvalidDataURL)
	}

	isBase64 := false
	if m, found := strings.CutSuffix(meta, ";base64"); found {
		meta = m
		isBase64 = true
	}
	mediaType, _, _ = strings.Cut(meta, ";")
	if mediaType == "" {
		mediaType = "text/plain"
	}

	if !isBase64 {
		text, err := url.PathUnescape(data)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
		}
		return mediaType, []byte(text), nil
	}

	data = strings.TrimSpace(data)
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if payload, err = enc.DecodeString(data); err == nil {
			return mediaType, payload, nil
		}
	}
	return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
}
