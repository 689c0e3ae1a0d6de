// Package fetcher implements the question set fetcher.
// The fetcher downloads the question set from the scoring service and stores it on disk.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/agents-course/taskfetch/internal/fileutils"
	"github.com/agents-course/taskfetch/internal/question"
	"github.com/agents-course/taskfetch/internal/scoring"
	"github.com/ubuntu/decorate"
)

// jsonIndent is the indentation of the stored question set.
const jsonIndent = "    "

type questionSource interface {
	Questions(ctx context.Context) (*http.Response, error)
}

// Fetcher downloads the question set.
type Fetcher struct {
	src questionSource
}

// New returns a new Fetcher reading questions from src.
func New(src questionSource) Fetcher {
	return Fetcher{src: src}
}

// Fetch downloads the question set, writes it as indented JSON to outputPath and returns it.
//
// If the service does not answer with a success, nothing is written and the returned
// error matches scoring.ErrRequestFailed.
// outputPath is created or overwritten. Its parent directory must exist.
func (f Fetcher) Fetch(ctx context.Context, outputPath string) (s question.Set, err error) {
	defer decorate.OnError(&err, "could not fetch question set")

	resp, err := f.src.Questions(ctx)
	if err != nil {
		if code, ok := scoring.StatusCode(err); ok {
			slog.Warn("Request failed", "status", code)
		} else {
			slog.Warn("Request failed", "error", err)
		}
		return nil, err
	}
	defer resp.Body.Close()
	slog.Info("Request successful", "status", resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	s, err = question.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("invalid question set: %v", err)
	}

	indented, err := fileutils.IndentJSON(data, jsonIndent)
	if err != nil {
		return nil, err
	}
	if err := fileutils.AtomicWrite(outputPath, indented); err != nil {
		return nil, fmt.Errorf("failed to write question set to %s: %v", outputPath, err)
	}
	slog.Debug("Wrote question set", "file", outputPath, "records", len(s))

	return s, nil
}
