//go:build !debugcycles

package interp

const debugCycles = false
