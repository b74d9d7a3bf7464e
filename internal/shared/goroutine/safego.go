// Package goroutine launches background work that must not crash the server.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// SafeGo runs fn in a goroutine and logs, instead of propagating, a panic.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
