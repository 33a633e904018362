package util

import (
	"log/slog"
	"time"
)

// Trace 记录耗时，用法: defer util.Trace("name")()
func Trace(name string) func() {
	start := time.Now()
	slog.Debug("start", "name", name)
	return func() {
		slog.Debug("done", "name", name, "elapsed", time.Since(start))
	}
}
