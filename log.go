package golay

import (
	"io"

	"github.com/op/go-logging"
)

var logFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{module} %{level:.4s} %{message}`,
)

// SetupLogging sends log output of all go-golay modules to w at the given
// level.
func SetupLogging(w io.Writer, level logging.Level) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), logFormat)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}
