//go:build !nogpu

package gpu

import (
	"log/slog"

	"github.com/gogpu/ggui"
)

// slogger returns the current package logger.
// All logging in internal/gpu goes through this function so that
// ggui.SetLogger takes effect without further wiring.
func slogger() *slog.Logger { return ggui.Logger() }
