package recovery

import (
	"runtime/debug"

	"github.com/vanpelt/gitmonitor/internal/logger"
)

// SafeGo runs fn in a goroutine and logs instead of crashing the server if it panics.
func SafeGo(name string, fn func()) {
	go func() {
		defer recoverPanic(name)
		fn()
	}()
}

// SafeGoWithCleanup is SafeGo with a cleanup func that runs even after a panic.
func SafeGoWithCleanup(name string, fn func(), cleanup func()) {
	go func() {
		defer func() {
			if cleanup != nil {
				cleanup()
			}
		}()
		defer recoverPanic(name)
		fn()
	}()
}

func recoverPanic(name string) {
	if r := recover(); r != nil {
		logger.Logger.Error().
			Str("goroutine", name).
			Interface("panic", r).
			Bytes("stack", debug.Stack()).
			Msg("🚨 panic recovered")
	}
}
