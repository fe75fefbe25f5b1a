// Package phasebar provides a really simple progress bar over the demo
// phases.
//
// A nil *Bar is valid and does nothing, so callers never need to check
// whether progress output was requested.
package phasebar

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

type Bar struct {
	pb *progressbar.ProgressBar
}

// New returns a bar with maxItems steps that renders to w.
func New(w io.Writer, maxItems int) *Bar {
	pb := progressbar.NewOptions(
		maxItems,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("starting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionClearOnFinish(),
	)
	_ = pb.Set(0)

	return &Bar{pb: pb}
}

// Describe changes the text shown next to the bar.
func (b *Bar) Describe(description string) {
	if b == nil {
		return
	}
	b.pb.Describe(description)
}

func (b *Bar) Inc() {
	if b == nil {
		return
	}
	_ = b.pb.Add(1)
}

func (b *Bar) Finish() {
	if b == nil {
		return
	}
	_ = b.pb.Finish()
	_ = b.pb.Close()
}

// IsFinished reports whether Finish was called. A nil bar is always finished.
func (b *Bar) IsFinished() bool {
	if b == nil {
		return true
	}
	return b.pb.IsFinished()
}
