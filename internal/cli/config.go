// Package cli provides utility functions for command line interface applications.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/agents-course/taskfetch/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// InitViperConfig loads the configuration of cmd into vip.
//
// The file given with --config wins. Otherwise a file named after cmdName is looked up in the
// directories returned by configDirs. A missing file is not an error.
// Environment variables prefixed with the command name override the file values.
func InitViperConfig(cmdName string, cmd *cobra.Command, vip *viper.Viper) error {
	if p, err := cmd.Flags().GetString("config"); err == nil && p != "" {
		vip.SetConfigFile(p)
	} else {
		vip.SetConfigName(cmdName)
		for _, dir := range configDirs(cmdName) {
			vip.AddConfigPath(dir)
		}
	}

	err := vip.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		slog.Info("No configuration file, using defaults, environment and flags", "error", notFound)
	case err != nil:
		return fmt.Errorf("invalid configuration file: %w", err)
	default:
		slog.Info("Using configuration file", "file", vip.ConfigFileUsed())
	}

	return bindEnv(cmdName, vip)
}

// configDirs lists the directories searched for the configuration file, by priority.
func configDirs(cmdName string) []string {
	dirs := []string{"."}
	if p := constants.GetDefaultConfigPath(); p != "" {
		dirs = append(dirs, p)
	}

	if runtime.GOOS == "windows" {
		dirs = append(dirs, filepath.Join(`C:\ProgramData`, cmdName))
	} else {
		dirs = append(dirs, filepath.Join("/etc", cmdName), filepath.Join("/usr/local/etc", cmdName))
	}

	bin, err := os.Executable()
	if err != nil {
		slog.Warn("Failed to get current executable path, not adding it as a config dir", "error", err)
		return dirs
	}
	return append(dirs, filepath.Dir(bin))
}

// bindEnv binds every TASKFETCH_* style variable to its lower case key.
// AutomaticEnv alone is not enough for Unmarshal, see https://github.com/spf13/viper/pull/1429.
func bindEnv(cmdName string, vip *viper.Viper) error {
	vip.SetEnvPrefix(cmdName)
	vip.AutomaticEnv()

	prefix := strings.ToUpper(strings.ReplaceAll(cmdName, "-", "_")) + "_"
	for _, e := range os.Environ() {
		name, _, _ := strings.Cut(e, "=")
		key, ok := strings.CutPrefix(name, prefix)
		if !ok || key == "" {
			continue
		}
		if err := vip.BindEnv(strings.ToLower(key), name); err != nil {
			return fmt.Errorf("could not bind environment variable %s: %w", name, err)
		}
	}

	return nil
}

// InstallConfigFlag adds a config flag to the command.
func InstallConfigFlag(cmd *cobra.Command) *string {
	return cmd.PersistentFlags().String("config", "", "use a specific configuration file")
}
