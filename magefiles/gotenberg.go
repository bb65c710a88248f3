//go:build mage

package main

import (
	"fmt"

	"github.com/jacobe603/dst-submittals-v2/internal/container"
)

// Gotenberg starts the local Gotenberg conversion service in a
// container, reusing a stopped container when one exists.
func Gotenberg() error {
	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}
	if err := container.EnsureGotenberg(rt); err != nil {
		return err
	}
	fmt.Printf("Gotenberg running via %s on %s\n", rt.Name(), container.GotenbergPortMap)
	return nil
}
