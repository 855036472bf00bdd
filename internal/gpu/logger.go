package gpu

import (
	"log/slog"

	"github.com/gogpu/learn"
)

// slogger returns the current package logger.
// All logging in internal/gpu goes through this function so that
// learn.SetLogger takes effect without any propagation step.
func slogger() *slog.Logger { return learn.Logger() }
