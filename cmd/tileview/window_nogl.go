//go:build nogl

package main

import "github.com/gogpu/tiles/backend"

func runWindow(config) error {
	return backend.ErrBackendNotAvailable
}
