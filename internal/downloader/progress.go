package downloader

import (
	"io"

	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
)

// progress renders one bar per downloaded file. A nil progress renders nothing.
type progress struct {
	p *mpb.Progress
}

func newProgress(w io.Writer) *progress {
	if w == nil {
		return nil
	}
	return &progress{p: mpb.New(mpb.WithOutput(w))}
}

// track wraps r so that reads advance a bar named name.
// size is the expected length, or a negative value when unknown.
// done must be called once r is no longer read, with whether the copy succeeded.
func (pr *progress) track(name string, size int64, r io.Reader) (tracked io.Reader, done func(ok bool)) {
	if pr == nil {
		return r, func(bool) {}
	}

	if size < 0 {
		size = 0
	}
	bar := pr.p.AddBar(size,
		mpb.PrependDecorators(
			decor.Name(name+" "),
			decor.CountersKibiByte("% .2f / % .2f"),
		),
		mpb.AppendDecorators(
			decor.EwmaETA(decor.ET_STYLE_MMSS, 60),
			decor.Name(" ] "),
			decor.AverageSpeed(decor.UnitKB, "% .2f"),
		),
	)

	proxy := bar.ProxyReader(r)
	return proxy, func(ok bool) {
		_ = proxy.Close()
		if !ok {
			bar.Abort(false)
			return
		}
		// Completes bars whose size was unknown, using the bytes read so far.
		bar.SetTotal(-1, true)
	}
}

// wait blocks until all bars are rendered for the last time.
func (pr *progress) wait() {
	if pr == nil {
		return
	}
	pr.p.Wait()
}
