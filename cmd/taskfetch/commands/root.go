// Package commands implements the taskfetch command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/agents-course/taskfetch/internal/cli"
	"github.com/agents-course/taskfetch/internal/constants"
	"github.com/agents-course/taskfetch/internal/downloader"
	"github.com/agents-course/taskfetch/internal/fetcher"
	"github.com/agents-course/taskfetch/internal/scoring"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	cmd    *cobra.Command
	viper  *viper.Viper
	config appConfig

	ctx    context.Context
	cancel context.CancelFunc
}

// appConfig holds the configuration for the application.
type appConfig struct {
	Verbosity  int           `mapstructure:"verbose"`
	OutputPath string        `mapstructure:"output_path"`
	FilesDir   string        `mapstructure:"files_dir"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Progress   bool          `mapstructure:"progress"`
}

// New creates a new App instance with default values.
func New() (*App, error) {
	a := App{}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	a.cmd = &cobra.Command{
		Use:   constants.CmdName,
		Short: "Download the question set and task files of the scoring service",
		Long: `Download the question set of the scoring service and store it as JSON,
then download the file attached to each task into the files directory.
Tasks whose file cannot be downloaded are reported and skipped.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Command parsing has been successful. Returns to not print usage anymore.
			a.cmd.SilenceUsage = true
			cli.SetVerbosity(a.config.Verbosity) // Set verbosity before loading config
			if err := cli.InitViperConfig(constants.CmdName, a.cmd, a.viper); err != nil {
				return err
			}
			if err := a.viper.Unmarshal(&a.config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			))); err != nil {
				return fmt.Errorf("unable to decode configuration into struct: %w", err)
			}
			slog.Debug("got app config", "config", a.config)

			cli.SetVerbosity(a.config.Verbosity)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context())
		},
	}
	a.viper = viper.New()

	if err := installRootCmd(&a); err != nil {
		return nil, err
	}
	cli.InstallConfigFlag(a.cmd)

	if err := a.viper.BindPFlags(a.cmd.PersistentFlags()); err != nil {
		return nil, err
	}

	a.installVersion()

	return &a, nil
}

func installRootCmd(app *App) error {
	cmd := app.cmd

	cmd.PersistentFlags().CountVarP(&app.config.Verbosity, "verbose", "v", "issue DEBUG logs with -vv, INFO being the default level")
	cmd.PersistentFlags().StringVar(&app.config.OutputPath, "output_path", constants.DefaultOutputPath, "Path to the file where the question set will be stored")

	if err := cmd.MarkPersistentFlagFilename("output_path", "json"); err != nil {
		return fmt.Errorf("failed to mark output_path flag as filename: %w", err)
	}

	// Settings only reachable from the configuration file or the environment.
	app.viper.SetDefault("files_dir", constants.DefaultFilesDir)
	app.viper.SetDefault("base_url", constants.DefaultServerURL)
	app.viper.SetDefault("timeout", time.Duration(0))
	app.viper.SetDefault("progress", false)

	return nil
}

// Run executes the command and associated process, returning an error if any.
func (a App) Run() error {
	return a.cmd.ExecuteContext(a.ctx)
}

// UsageError returns if the error is a command parsing or runtime one.
func (a App) UsageError() bool {
	return !a.cmd.SilenceUsage
}

// Quit cancels the running downloads.
func (a App) Quit() {
	a.cancel()
}

func (a App) run(ctx context.Context) error {
	c, err := scoring.New(scoring.WithBaseServerURL(a.config.BaseURL), scoring.WithResponseTimeout(a.config.Timeout))
	if err != nil {
		return fmt.Errorf("failed to create scoring client: %v", err)
	}

	s, err := fetcher.New(c).Fetch(ctx, a.config.OutputPath)
	if errors.Is(err, scoring.ErrRequestFailed) && ctx.Err() == nil {
		// Not signalled through the exit status: there is just nothing left to download.
		slog.Warn("Could not get the question set, skipping task files", "error", err)
		return nil
	}
	if err != nil {
		return err
	}

	var opts []downloader.Options
	if a.config.Progress {
		opts = append(opts, downloader.WithProgress(os.Stderr))
	}
	summary, err := downloader.New(c, a.config.FilesDir, opts...).Download(ctx, s)
	if err != nil {
		return err
	}
	slog.Info("Downloaded task files", "dir", a.config.FilesDir, "written", len(summary.Written), "failed", len(summary.Failed))

	return nil
}
