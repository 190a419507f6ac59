package opengl

import "errors"

var (
	// ErrNotInitialized is returned when a device is requested before Init.
	ErrNotInitialized = errors.New("opengl: backend not initialized")

	// ErrInvalidDimensions is returned for a viewport without area.
	ErrInvalidDimensions = errors.New("opengl: invalid dimensions")
)
