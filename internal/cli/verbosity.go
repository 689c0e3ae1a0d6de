package cli

import (
	"log/slog"

	"github.com/agents-course/taskfetch/internal/constants"
)

// SetVerbosity sets the logging level for the default logger based on the verbose flag count.
// With INFO as the default level, a single -v does not change the output.
//
// This function has the same behaviors as slog.SetLogLoggerLevel.
func SetVerbosity(level int) {
	slog.SetLogLoggerLevel(getLevel(level))
}

func getLevel(level int) slog.Level {
	switch level {
	case 0:
		return constants.DefaultLogLevel
	case 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
