//go:build !(tinygo && baremetal)

package critical

// Default returns the section used by the firmware.
func Default() Section { return &Mutex{} }
