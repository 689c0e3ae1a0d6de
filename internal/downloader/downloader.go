// Package downloader implements the task file downloader.
// The downloader fetches the file attached to each task of a question set and stores it in an output directory.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/agents-course/taskfetch/internal/constants"
	"github.com/agents-course/taskfetch/internal/fileutils"
	"github.com/agents-course/taskfetch/internal/question"
	"github.com/agents-course/taskfetch/internal/scoring"
	"github.com/ubuntu/decorate"
)

var (
	// ErrOutputDir is returned when the output directory does not exist or is not a directory.
	ErrOutputDir = errors.New("output directory is not an existing directory")
	// ErrUnsafeFilename is returned when a filename would be written outside the output directory.
	ErrUnsafeFilename = errors.New("filename is not a plain file name")
)

type fileSource interface {
	TaskFile(ctx context.Context, taskID string) (*http.Response, error)
}

// Downloader fetches task files.
type Downloader struct {
	src       fileSource
	outputDir string

	log            *slog.Logger
	progressOutput io.Writer
}

type options struct {
	log            *slog.Logger
	progressOutput io.Writer
}

// Options represents an optional function to override Downloader default values.
type Options func(*options)

// WithLogger sets the logger reporting per file status.
func WithLogger(l *slog.Logger) Options {
	return func(o *options) {
		o.log = l
	}
}

// WithProgress renders download progress bars to w.
func WithProgress(w io.Writer) Options {
	return func(o *options) {
		o.progressOutput = w
	}
}

// Failure describes a task whose file was not stored.
type Failure struct {
	TaskID string
	Err    error
}

// Summary lists the outcome of a download run.
type Summary struct {
	// Written holds the paths of the stored files, in processing order.
	Written []string
	// Failed holds the skipped tasks, in processing order.
	Failed []Failure
}

// New returns a new Downloader storing files from src into outputDir.
func New(src fileSource, outputDir string, args ...Options) Downloader {
	opts := options{
		log: slog.Default(),
	}
	for _, opt := range args {
		opt(&opts)
	}

	return Downloader{
		src:            src,
		outputDir:      outputDir,
		log:            opts.log,
		progressOutput: opts.progressOutput,
	}
}

// Download fetches the file of each task in s, one after the other.
//
// A task whose file cannot be fetched or stored is logged, recorded in the summary and skipped.
// The output directory must exist. Only a cancelled context stops the run early.
func (d Downloader) Download(ctx context.Context, s question.Set) (summary Summary, err error) {
	defer decorate.OnError(&err, "could not download task files")

	ok, err := fileutils.IsDir(d.outputDir)
	if err != nil {
		return summary, errors.Join(ErrOutputDir, err)
	}
	if !ok {
		return summary, fmt.Errorf("%w: %s", ErrOutputDir, d.outputDir)
	}

	pr := newProgress(d.progressOutput)
	defer pr.wait()

	for i, r := range s {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		taskID, err := r.TaskID()
		if err != nil {
			d.log.Warn("Skipping record without usable task ID", "index", i, "error", err)
			summary.Failed = append(summary.Failed, Failure{Err: err})
			continue
		}

		path, err := d.download(ctx, pr, taskID)
		if err != nil {
			summary.Failed = append(summary.Failed, Failure{TaskID: taskID, Err: err})
			continue
		}
		summary.Written = append(summary.Written, path)
	}

	return summary, nil
}

// download fetches and stores the file of a single task, returning the written path.
func (d Downloader) download(ctx context.Context, pr *progress, taskID string) (string, error) {
	log := d.log.With("task_id", taskID)

	resp, err := d.src.TaskFile(ctx, taskID)
	if err != nil {
		if code, ok := scoring.StatusCode(err); ok {
			log.Warn("File request failed", "status", code)
		} else {
			log.Warn("File request failed", "error", err)
		}
		return "", err
	}
	defer resp.Body.Close()
	log.Info("File request successful", "status", resp.StatusCode)

	name := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = taskID + constants.FallbackFileExtension
		log.Warn("Filename not found in headers, using default filename.", "file", name)
	}
	if err := checkFilename(name); err != nil {
		log.Warn("Refusing to write file", "file", name, "error", err)
		return "", err
	}

	path := filepath.Join(d.outputDir, name)
	body, done := pr.track(name, resp.ContentLength, resp.Body)
	if err := fileutils.AtomicWriteFrom(path, body); err != nil {
		done(false)
		log.Warn("Failed to write file", "file", path, "error", err)
		return "", err
	}
	done(true)
	log.Debug("Wrote task file", "file", path)

	return path, nil
}

// checkFilename ensures name designates a file directly inside the output directory.
func checkFilename(name string) error {
	if name == "." || strings.ContainsAny(name, `/\`+"\x00") || !filepath.IsLocal(name) {
		return fmt.Errorf("%w: %q", ErrUnsafeFilename, name)
	}
	return nil
}
