// Package enforce centralizes the fatal-error path for invariant violations
// the engine cannot recover from, such as a missing paired edge or a
// non-positive push amount. These are bugs, not expected runtime
// conditions, so they panic rather than return an error. (The post-run
// verifier in package residual reports height and conservation failures as
// returned errors instead.)
package enforce

import "github.com/rs/zerolog/log"

// That panics with msg if cond is false. Used for conditions that must hold
// for the algorithm to be correct (as opposed to user input validation).
func That(cond bool, msg string) {
	if !cond {
		log.Panic().Msg(msg)
	}
}

// Exists panics with msg if err is non-nil.
func Exists(err error, msg string) {
	if err != nil {
		log.Panic().Err(err).Msg(msg)
	}
}
