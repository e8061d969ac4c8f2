// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"alnn/internal/cli"
	"alnn/internal/config"
	"alnn/internal/fasta"
	"alnn/internal/logging"
	"alnn/internal/metric"
	"alnn/internal/pipeline"
	"alnn/internal/progress"
	"alnn/internal/search"
	"alnn/internal/seqset"
	"alnn/internal/summary"
	"alnn/internal/version"
	"alnn/internal/writers"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 2
	ExitRuntime     = 3
	ExitInterrupted = 130
)

// ErrTooFewRecords is returned when the alignment holds fewer than two records.
var ErrTooFewRecords = errors.New("there must be at least two FASTA records")

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error   { return &exitError{code: ExitUsage, err: err} }
func runtimeErr(err error) error { return &exitError{code: ExitRuntime, err: err} }

// NewCommand builds the alnn root command writing to the given streams.
func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	var o cli.Options
	cmd := &cobra.Command{
		Use:   "alnn",
		Short: "nearest neighbours in a pre-aligned multi-FASTA file",
		Long: `alnn reads a multi-FASTA alignment (all sequences the same length, gaps as '-')
and reports, for every query record, the most similar database record.

Similarity is gap-aware percent identity by default: columns that are gaps in
both sequences are ignored. --metric hamming counts differing columns instead
and never reports a record as its own neighbour.

The result is a TSV table: query_id, neighbor_id, score.`,
		Example: `  alnn -i aln.fa -o nn.tsv
  alnn -i aln.fa.gz -o nn.tsv.gz -n 8 -q queries.txt -d reference.txt
  alnn -i aln.fa -o - --metric hamming --format jsonl`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.ConfigFile != "" {
				c, err := config.Load(o.ConfigFile)
				if err != nil {
					return usageErr(err)
				}
				cli.ApplyConfig(cmd.Flags(), &o, c)
			}
			if err := cli.Validate(&o); err != nil {
				return usageErr(err)
			}
			return run(cmd.Context(), o, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageErr(err) })
	cli.Register(cmd.Flags(), &o)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "alnn version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	})
	return cmd
}

// RunContext executes the command line and returns the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	cmd := NewCommand(stdout, stderr)
	cmd.SetArgs(argv)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	code := ExitUsage
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
	}
	if code == ExitInterrupted {
		return code
	}
	fmt.Fprintln(stderr, "error:", err)
	if code == ExitUsage {
		fmt.Fprintln(stderr, "Run 'alnn --help' for usage.")
	}
	return code
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func newLogger(o cli.Options, stderr io.Writer) *logging.Logger {
	if o.Quiet {
		return logging.Noop()
	}
	level, _ := logging.ParseLevel(o.LogLevel)
	return logging.New(stderr, o.LogFormat, level)
}

func run(ctx context.Context, o cli.Options, stdout, stderr io.Writer) error {
	log := newLogger(o, stderr)
	kind, _ := metric.ParseKind(o.Metric)
	mode, _ := progress.ParseMode(o.Progress)
	if o.Quiet {
		mode = progress.ModeOff
	}

	coll, err := fasta.Load(ctx, o.InputFasta)
	if err != nil {
		if ctx.Err() != nil {
			return &exitError{code: ExitInterrupted, err: ctx.Err()}
		}
		log.LogLoad(ctx, o.InputFasta, 0, 0, err)
		return runtimeErr(fmt.Errorf("unable to parse FASTA file: %w", err))
	}
	log.LogLoad(ctx, o.InputFasta, coll.Len(), coll.Width(), nil)
	if coll.Len() < 2 {
		return runtimeErr(ErrTooFewRecords)
	}

	workers := o.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	pool, err := pipeline.NewPool(workers)
	if err != nil {
		return runtimeErr(fmt.Errorf("failed to build worker pool: %w", err))
	}
	log.Info("worker pool ready", "workers", pool.Workers())

	queries, err := selectView(ctx, log, coll, "query", o.QueryIDFile)
	if err != nil {
		return err
	}
	database, err := selectView(ctx, log, coll, "database", o.DatabaseIDFile)
	if err != nil {
		return err
	}
	if kind.ExcludesSelf() {
		if err := checkCandidates(kind, queries, database); err != nil {
			return runtimeErr(err)
		}
	} else if shared := queries.Overlap(database); shared > 0 {
		log.Debug("query and database subsets overlap; records may be reported as their own neighbour",
			"shared", shared, "ids", sharedIDs(queries, database))
	}

	if o.OutPath != "-" {
		if _, err := os.Stat(o.OutPath); err == nil {
			log.Warn("the output file already exists, it will be overwritten", "path", o.OutPath)
		}
	}

	rep := progress.New(stderr, queries.Len(), mode, log)
	start := time.Now()
	results := pool.Run(kind, queries, database, rep)
	rep.Finish()
	log.LogSearch(ctx, kind.String(), queries.Len(), database.Len(), pool.Workers(), time.Since(start))

	st := summary.Of(kind, results)
	log.Info("score summary",
		"n", st.N, "mean", st.Mean, "stddev", st.StdDev,
		"min", st.Min, "max", st.Max, "exact", st.Exact)

	if err := emit(o, kind, queries, results, stdout); err != nil {
		log.LogWrite(ctx, o.OutPath, 0, err)
		return runtimeErr(err)
	}
	log.LogWrite(ctx, o.OutPath, len(results), nil)
	return nil
}

func selectView(ctx context.Context, log *logging.Logger, coll *seqset.Collection, role, idFile string) (*seqset.View, error) {
	var ids []string
	if idFile != "" {
		var err error
		ids, err = fasta.ReadIDs(idFile)
		if err != nil {
			return nil, runtimeErr(fmt.Errorf("error reading %s id file: %w", role, err))
		}
	}
	v := seqset.Filter(coll, ids)
	log.LogFilter(ctx, role, idFile, v.Len(), coll.Len())
	if v.Len() == 0 {
		return nil, runtimeErr(fmt.Errorf("no %s records selected from %s", role, idFile))
	}
	return v, nil
}

// checkCandidates makes sure every query keeps at least one database record
// once records sharing its ID are excluded.
func checkCandidates(kind metric.Kind, queries, database *seqset.View) error {
	ids := make(map[string]struct{}, database.Len())
	for _, id := range database.IDs() {
		ids[id] = struct{}{}
	}
	if len(ids) > 1 {
		return nil
	}
	for i := 0; i < queries.Len(); i++ {
		q := queries.Record(i).ID
		if _, own := ids[q]; own {
			return fmt.Errorf("%s search excludes self-matches: query %s has no database record with a different ID", kind, q)
		}
	}
	return nil
}

// sharedIDs lists the queries that are also database records, in query order.
func sharedIDs(queries, database *seqset.View) []string {
	var out []string
	for i := 0; i < queries.Len(); i++ {
		if database.Contains(queries.Index(i)) {
			out = append(out, queries.Record(i).ID)
		}
	}
	return out
}

// emit creates the destination only once results are complete.
func emit(o cli.Options, kind metric.Kind, queries *seqset.View, results []search.Result, stdout io.Writer) error {
	var (
		w   io.WriteCloser
		err error
	)
	if o.OutPath == "-" {
		w = nopCloser{stdout}
	} else if w, err = writers.Create(o.OutPath); err != nil {
		return fmt.Errorf("create %s: %w", o.OutPath, err)
	}
	werr := writers.WriteResults(w, o.Format, o.Header, kind, queries, results)
	cerr := w.Close()
	if werr == nil {
		werr = cerr
	}
	if writers.IsBrokenPipe(werr) {
		return nil
	}
	return werr
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
