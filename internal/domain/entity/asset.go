package entity

import "strings"

// AssetKind identifies which raster slot an asset fills
type AssetKind string

const (
	AssetLogo      AssetKind = "logo"
	AssetSignature AssetKind = "signature"
)

// AssetRef points at a raster image: an inline data URL, an http(s) URL
// or a path relative to the asset directory
type AssetRef struct {
	Source string `json:"source"`
}

// NewAssetRef returns nil for an empty source
func NewAssetRef(source string) *AssetRef {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil
	}
	return &AssetRef{Source: source}
}

// IsInline reports whether the pixel data is carried in the reference itself
func (a *AssetRef) IsInline() bool {
	return a != nil && strings.HasPrefix(a.Source, "data:")
}

// IsRemote reports whether the reference must be fetched over HTTP
func (a *AssetRef) IsRemote() bool {
	if a == nil {
		return false
	}
	s := strings.ToLower(a.Source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// String hides inline payloads so references can be logged
func (a *AssetRef) String() string {
	switch {
	case a == nil:
		return "<none>"
	case a.IsInline():
		if i := strings.IndexByte(a.Source, ','); i > 0 {
			return a.Source[:i] + ",…"
		}
		return "data:…"
	default:
		return a.Source
	}
}

// Image is a resolved raster asset, normalised to 8-bit PNG
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// AspectRatio returns height over width, or 0 for an empty image
func (i *Image) AspectRatio() float64 {
	if i == nil || i.Width == 0 {
		return 0
	}
	return float64(i.Height) / float64(i.Width)
}
