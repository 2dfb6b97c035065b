package common

import "github.com/nspcc-dev/neo-go/pkg/interop/runtime"

// CheckWitnessWithMessage checks witness of the passed caller.
// It panics with panicMsg on fail.
func CheckWitnessWithMessage(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
