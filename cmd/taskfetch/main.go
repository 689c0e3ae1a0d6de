// Main package for the taskfetch command line tool.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/agents-course/taskfetch/cmd/taskfetch/commands"
	"github.com/agents-course/taskfetch/internal/constants"
)

func main() {
	slog.SetLogLoggerLevel(constants.DefaultLogLevel)

	a, err := commands.New()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	installSignalHandler(a)

	os.Exit(run(a))
}

type app interface {
	Run() error
	UsageError() bool
	Quit()
}

func run(a app) int {
	if err := a.Run(); err != nil {
		slog.Error(err.Error())

		if a.UsageError() {
			return 2
		}
		return 1
	}

	return 0
}

func installSignalHandler(a app) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-c
		slog.Warn("Received signal, stopping", "signal", sig)
		a.Quit()
	}()
}
