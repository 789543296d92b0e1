package layout

import "errors"

var (
	// ErrRenderFailed wraps any page-writer failure; no output is returned with it
	ErrRenderFailed = errors.New("invoice render failed")

	// ErrImageRejected means the page-writer could not embed an image.
	// The engine skips the image and keeps rendering.
	ErrImageRejected = errors.New("image rejected by page writer")
)
