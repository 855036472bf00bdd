package tutorial

import (
	"log/slog"

	"github.com/gogpu/learn"
)

// slogger returns the logger set with learn.SetLogger.
func slogger() *slog.Logger { return learn.Logger() }
