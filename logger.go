// logger.go
package wordlist

import (
	"github.com/baditaflorin/go_wordlist_check/internal/adapters/logger"
	"github.com/baditaflorin/go_wordlist_check/internal/ports"
)

// createDefaultLogger creates a logger writing warnings and errors to stderr.
func createDefaultLogger() (ports.Logger, error) {
	return logger.NewStdLogger()
}
