package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type AppConfig = appConfig

// SetupConfig describes the environment of an App under test.
type SetupConfig struct {
	ServerURL       string
	MissingFilesDir bool
}

// NewForTests returns an App talking to config.ServerURL and storing task files in filesDir.
func NewForTests(t *testing.T, config SetupConfig, args ...string) (app *App, filesDir string) {
	t.Helper()

	filesDir = filepath.Join(t.TempDir(), "data")
	if !config.MissingFilesDir {
		require.NoError(t, os.Mkdir(filesDir, 0750), "Setup: could not create files dir")
	}

	app, err := New()
	require.NoError(t, err, "Setup: could not create app")

	if config.ServerURL != "" {
		app.viper.Set("base_url", config.ServerURL)
	}
	app.viper.Set("files_dir", filesDir)
	app.cmd.SetArgs(args)

	return app, filesDir
}

// Cmd returns the root command.
func (a App) Cmd() *cobra.Command {
	return a.cmd
}

// Config returns the configuration decoded by the last run.
func (a App) Config() AppConfig {
	return a.config
}
