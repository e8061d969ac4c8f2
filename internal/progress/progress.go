// internal/progress/progress.go

// Package progress reports how many queries have been searched. It is purely
// observational: reporters never touch results or ordering.
package progress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"alnn/internal/logging"
)

// Mode selects how progress is shown.
type Mode string

const (
	ModeAuto Mode = "auto" // bar on a terminal, log lines otherwise
	ModeBar  Mode = "bar"
	ModeLog  Mode = "log"
	ModeOff  Mode = "off"
)

// ParseMode validates a --progress value.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAuto, ModeBar, ModeLog, ModeOff:
		return m, nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("invalid progress mode %q (want auto | bar | log | off)", s)
	}
}

// Reporter receives completion counts from concurrent workers.
type Reporter interface {
	Done(n int)
	Finish()
}

// LogInterval is the minimum spacing between progress log lines.
var LogInterval = 2 * time.Second

// New returns a reporter for total queries writing to out.
func New(out io.Writer, total int, mode Mode, log *logging.Logger) Reporter {
	if mode == ModeAuto {
		mode = ModeLog
		if isTerminal(out) {
			mode = ModeBar
		}
	}
	switch mode {
	case ModeBar:
		bar := pb.Full.New(total)
		bar.SetWriter(out)
		bar.Start()
		return &barReporter{bar: bar}
	case ModeLog:
		if log == nil {
			log = logging.Noop()
		}
		return &logReporter{
			log:   log,
			total: int64(total),
			every: rate.Sometimes{First: 1, Interval: LogInterval},
		}
	default:
		return nop{}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

type barReporter struct{ bar *pb.ProgressBar }

func (r *barReporter) Done(n int) { r.bar.Add(n) }
func (r *barReporter) Finish()    { r.bar.Finish() }

type logReporter struct {
	log   *logging.Logger
	total int64
	done  atomic.Int64
	every rate.Sometimes
}

func (r *logReporter) Done(n int) {
	d := r.done.Add(int64(n))
	r.every.Do(func() {
		r.log.Info("search progress", "done", d, "total", r.total)
	})
}

func (r *logReporter) Finish() {
	r.log.Info("search progress", "done", r.done.Load(), "total", r.total)
}

type nop struct{}

func (nop) Done(int) {}
func (nop) Finish()  {}
