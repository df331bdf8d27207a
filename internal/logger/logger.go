// Package logger provides the process-wide hclog logger and named
// sub-loggers for the individual components.
package logger

import (
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	mu   sync.Mutex
	root hclog.Logger
)

// Root returns the shared root logger, creating it on first use.
func Root() hclog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		root = hclog.New(&hclog.LoggerOptions{
			Name:   "filmlog",
			Level:  hclog.Info,
			Output: os.Stderr,
		})
	}
	return root
}

// SetLevel adjusts the root logger level. Unknown level strings fall
// back to info.
func SetLevel(level string) {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	Root().SetLevel(lvl)
}

// Named returns a sub-logger for a component, e.g. "tmdb" or "server".
func Named(name string) hclog.Logger {
	return Root().Named(name)
}
