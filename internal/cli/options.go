// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"alnn/internal/config"
	"alnn/internal/logging"
	"alnn/internal/metric"
	"alnn/internal/progress"
	"alnn/internal/writers"
)

// Options holds all CLI flags.
type Options struct {
	// Input / output
	InputFasta     string
	OutPath        string
	QueryIDFile    string
	DatabaseIDFile string

	// Search
	Workers int
	Metric  string

	// Output
	Format string
	Header bool

	// Misc
	Progress   string
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Quiet      bool
}

// Register wires all flags onto fs.
func Register(fs *pflag.FlagSet, o *Options) {
	fs.SortFlags = false

	fs.StringVarP(&o.InputFasta, "input-fasta", "i", "", "aligned multi-FASTA file (gz/xz/zst/bz2 ok, '-' for stdin) [*]")
	fs.StringVarP(&o.OutPath, "out-path", "o", "", "TSV output path ('.gz'/'.zst'/'.lz4' compress, '-' for stdout) [*]")
	fs.IntVarP(&o.Workers, "num-workers", "n", 1, "number of worker goroutines (0 = all CPUs)")
	fs.StringVarP(&o.QueryIDFile, "query-id-file", "q", "", "restrict queries to the IDs listed in FILE, one per line")
	fs.StringVarP(&o.DatabaseIDFile, "database-id-file", "d", "", "restrict the database to the IDs listed in FILE, one per line")

	fs.StringVar(&o.Metric, "metric", metric.PercentIdentity.String(), "similarity metric: identity | hamming")
	fs.StringVar(&o.Format, "format", writers.FormatTSV, "output format: "+strings.Join(writers.Formats(), " | "))
	fs.BoolVar(&o.Header, "header", false, "write a header line (tsv)")

	fs.StringVar(&o.Progress, "progress", string(progress.ModeAuto), "progress display: auto | bar | log | off")
	fs.StringVar(&o.ConfigFile, "config", "", "YAML file with defaults for unset flags")
	fs.StringVar(&o.LogLevel, "log-level", "info", "log level: debug | info | warn | error")
	fs.StringVar(&o.LogFormat, "log-format", logging.FormatText, "log format: text | json")
	fs.BoolVar(&o.Quiet, "quiet", false, "suppress logs and progress")
}

// ApplyConfig copies values from c into o for every flag not set on the
// command line.
func ApplyConfig(fs *pflag.FlagSet, o *Options, c config.Config) {
	set := func(name string) bool { return fs.Changed(name) }
	if !set("num-workers") && c.Workers != nil {
		o.Workers = *c.Workers
	}
	if !set("metric") && c.Metric != "" {
		o.Metric = c.Metric
	}
	if !set("format") && c.Format != "" {
		o.Format = c.Format
	}
	if !set("header") && c.Header != nil {
		o.Header = *c.Header
	}
	if !set("progress") && c.Progress != "" {
		o.Progress = c.Progress
	}
	if !set("log-level") && c.LogLevel != "" {
		o.LogLevel = c.LogLevel
	}
	if !set("log-format") && c.LogFormat != "" {
		o.LogFormat = c.LogFormat
	}
}

// Validate applies CLI invariants.
func Validate(o *Options) error {
	if o.InputFasta == "" {
		return errors.New("--input-fasta is required")
	}
	if o.OutPath == "" {
		return errors.New("--out-path is required")
	}
	if o.Workers < 0 {
		return errors.New("--num-workers must be ≥ 0")
	}
	if _, err := metric.ParseKind(o.Metric); err != nil {
		return fmt.Errorf("invalid --metric: %w", err)
	}
	if !writers.ValidFormat(o.Format) {
		return fmt.Errorf("invalid --format %q", o.Format)
	}
	if _, err := progress.ParseMode(o.Progress); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(o.LogLevel); err != nil {
		return err
	}
	if !logging.ValidFormat(o.LogFormat) {
		return fmt.Errorf("invalid --log-format %q", o.LogFormat)
	}
	return nil
}
