package assets

import "errors"

var (
	ErrUnsupportedSource = errors.New("unsupported asset source")
	ErrInvalidDataURL    = errors.New("invalid data URL")
	ErrFetchFailed       = errors.New("asset fetch failed")
	ErrTooLarge          = errors.New("asset exceeds size limit")
	ErrDecodeFailed      = errors.New("asset is not a decodable image")
)
