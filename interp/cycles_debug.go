//go:build debugcycles

package interp

// debugcycles pins CycleCounter to zero so block traces replay
// deterministically.
const debugCycles = true
