// Package constants is responsible for defining the constants used in the application.
// It also provides a utility function to get the default user configuration path.
package constants

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// CmdName is the name of the command line tool.
	CmdName = "taskfetch"

	// DefaultAppFolder is the name of the default user configuration folder.
	DefaultAppFolder = "taskfetch"

	// DefaultLogLevel is the default log level selected without any verbosity flags.
	DefaultLogLevel = slog.LevelInfo

	// DefaultServerURL is the base URL of the scoring service.
	DefaultServerURL = "https://agents-course-unit4-scoring.hf.space"

	// QuestionsEndpoint is the path of the question set, relative to the server URL.
	QuestionsEndpoint = "questions"

	// FilesEndpoint is the path prefix of the per task files, relative to the server URL.
	FilesEndpoint = "files"

	// DefaultOutputPath is where the question set is stored when no path is given.
	DefaultOutputPath = "../data/questions.json"

	// DefaultFilesDir is the directory receiving the per task files.
	DefaultFilesDir = "../data/"

	// FallbackFileExtension is appended to the task ID when the server does not suggest a filename.
	FallbackFileExtension = ".json"
)

// Version is the version of the executable, overridden at build time.
var Version = "Dev"

type options struct {
	baseDir func() (string, error)
}

type option func(*options)

// GetDefaultConfigPath is the default path to the user configuration directory.
func GetDefaultConfigPath(opts ...option) string {
	o := options{baseDir: os.UserConfigDir}
	for _, opt := range opts {
		opt(&o)
	}

	base := getBaseDir(o.baseDir)
	if base == "" {
		return ""
	}
	return filepath.Join(base, DefaultAppFolder)
}

// getBaseDir is a helper function to handle the case where the baseDir function returns an error, and instead return an empty string.
func getBaseDir(baseDirFunc func() (string, error)) string {
	dir, err := baseDirFunc()
	if err != nil {
		return ""
	}
	return dir
}
