// internal/integration/integration_test.go
package integration

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"alnn/internal/app"
	"alnn/pkg/api"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

type row struct {
	query, neighbor string
	score           float64
}

func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(append(args, "--progress", "off"), &out, &errBuf)
	return code, errBuf.String()
}

func readRows(t *testing.T, fn string) []row {
	t.Helper()
	f, err := os.Open(fn)
	if err != nil {
		t.Fatalf("open %s: %v", fn, err)
	}
	defer f.Close()
	var rows []row
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		cols := strings.Split(sc.Text(), "\t")
		if len(cols) != 3 {
			t.Fatalf("want 3 columns, got %q", sc.Text())
		}
		s, err := strconv.ParseFloat(cols[2], 64)
		if err != nil {
			t.Fatalf("score %q: %v", cols[2], err)
		}
		rows = append(rows, row{cols[0], cols[1], s})
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return rows
}

func TestEndToEnd_TwoIdenticalRecords(t *testing.T) {
	fa := write(t, "two.fa", ">A\nAAAA\n>B\nAAAA\n")
	out := filepath.Join(t.TempDir(), "nn.tsv")

	code, stderr := run(t, "-i", fa, "-o", out)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	rows := readRows(t, out)
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}
	// Identity keeps self-matches, ties resolve to the last candidate.
	want := []row{{"A", "B", 1}, {"B", "B", 1}}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: got %+v want %+v", i, rows[i], want[i])
		}
	}
}

const partitioned = `>q_1
AAAAAAAAAAAAA
>q_2
CCCCCCCCCCCCC
>db_1
AAAAAAAAAAAAA
>db_2
ACCCCCCCCCCCC
`

func TestEndToEnd_QueryAndDatabaseLists(t *testing.T) {
	fa := write(t, "part.fa", partitioned)
	qf := write(t, "q.txt", "q_1\nq_2\n")
	df := write(t, "d.txt", "db_1\n\ndb_2\nmissing\n")

	for _, m := range []string{"identity", "hamming"} {
		t.Run(m, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "nn.tsv")
			code, stderr := run(t, "-i", fa, "-o", out, "-q", qf, "-d", df, "--metric", m)
			if code != 0 {
				t.Fatalf("exit %d, stderr=%s", code, stderr)
			}
			rows := readRows(t, out)
			if len(rows) != 2 {
				t.Fatalf("want 2 rows, got %d", len(rows))
			}
			if rows[0].query != "q_1" || rows[0].neighbor != "db_1" {
				t.Fatalf("q_1: got %+v", rows[0])
			}
			if rows[1].query != "q_2" || rows[1].neighbor != "db_2" {
				t.Fatalf("q_2: got %+v", rows[1])
			}
			if m == "hamming" && (rows[0].score != 0 || rows[1].score != 1) {
				t.Fatalf("hamming scores: %+v", rows)
			}
			if m == "identity" && rows[0].score != 1 {
				t.Fatalf("identity score: %+v", rows[0])
			}
		})
	}
}

func TestEndToEnd_HammingSingleRecordDatabase(t *testing.T) {
	fa := write(t, "qdb.fa", ">q\nAAAA\n>db\nAAAT\n")
	qf := write(t, "q.txt", "q\n")
	df := write(t, "d.txt", "db\n")
	out := filepath.Join(t.TempDir(), "nn.tsv")

	code, stderr := run(t, "-i", fa, "-o", out, "-q", qf, "-d", df, "--metric", "hamming")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	rows := readRows(t, out)
	if len(rows) != 1 || rows[0] != (row{"q", "db", 1}) {
		t.Fatalf("got %+v", rows)
	}
}

func TestEndToEnd_HammingOnlySelfCandidates(t *testing.T) {
	// Two records share the query's ID, so nothing is left after exclusion.
	fa := write(t, "dup.fa", ">q\nAAAA\n>q\nAAAT\n>x\nCCCC\n")
	qf := write(t, "q.txt", "q\n")
	df := write(t, "d.txt", "q\n")
	out := filepath.Join(t.TempDir(), "nn.tsv")

	code, stderr := run(t, "-i", fa, "-o", out, "-q", qf, "-d", df, "--metric", "hamming")
	if code != 3 {
		t.Fatalf("want exit 3, got %d (%s)", code, stderr)
	}
	if !strings.Contains(stderr, "query q has no database record") {
		t.Fatalf("stderr: %s", stderr)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output must not be created on failure")
	}
}

func TestEndToEnd_WorkerCountsAgree(t *testing.T) {
	var b strings.Builder
	seqs := []string{"ACGT-ACGTA", "ACGTTACG-A", "TCGT-ACGTA", "ACCTTACGGA", "--GTTACGTA", "ACGTTTCGTA"}
	for i := 0; i < 40; i++ {
		b.WriteString(">r" + strconv.Itoa(i) + "\n" + seqs[i%len(seqs)][i%3:] + seqs[i%len(seqs)][:i%3] + "\n")
	}
	fa := write(t, "many.fa", b.String())

	var first []byte
	for _, n := range []string{"1", "2", strconv.Itoa(runtime.NumCPU()), "0"} {
		out := filepath.Join(t.TempDir(), "nn.tsv")
		code, stderr := run(t, "-i", fa, "-o", out, "-n", n)
		if code != 0 {
			t.Fatalf("-n %s: exit %d, stderr=%s", n, code, stderr)
		}
		got, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if first == nil {
			first = got
			continue
		}
		if !bytes.Equal(first, got) {
			t.Fatalf("-n %s output differs from -n 1", n)
		}
	}
}

func TestEndToEnd_LengthMismatch(t *testing.T) {
	fa := write(t, "bad.fa", ">A\nAAAA\n>B\nAAA\n")
	code, stderr := run(t, "-i", fa, "-o", filepath.Join(t.TempDir(), "nn.tsv"))
	if code != 3 {
		t.Fatalf("want exit 3, got %d", code)
	}
	if !strings.Contains(stderr, "(B)") {
		t.Fatalf("error should name record B: %s", stderr)
	}
}

func TestEndToEnd_EmptyInput(t *testing.T) {
	fa := write(t, "empty.fa", "")
	out := filepath.Join(t.TempDir(), "nn.tsv")
	code, stderr := run(t, "-i", fa, "-o", out)
	if code != 3 {
		t.Fatalf("want exit 3, got %d", code)
	}
	if !strings.Contains(stderr, "no records found") {
		t.Fatalf("stderr: %s", stderr)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output must not be created on failure")
	}
}

func TestEndToEnd_SingleRecord(t *testing.T) {
	fa := write(t, "one.fa", ">A\nAAAA\n")
	code, _ := run(t, "-i", fa, "-o", filepath.Join(t.TempDir(), "nn.tsv"))
	if code != 3 {
		t.Fatalf("want exit 3, got %d", code)
	}
}

func TestEndToEnd_NoQueriesSelected(t *testing.T) {
	fa := write(t, "two.fa", ">A\nAAAA\n>B\nAAAA\n")
	qf := write(t, "q.txt", "nope\n")
	code, stderr := run(t, "-i", fa, "-o", filepath.Join(t.TempDir(), "nn.tsv"), "-q", qf)
	if code != 3 {
		t.Fatalf("want exit 3, got %d (%s)", code, stderr)
	}
}

func TestEndToEnd_JSONLToStdout(t *testing.T) {
	fa := write(t, "two.fa", ">A\nAAAA\n>B\nAAAT\n")
	var out, errBuf bytes.Buffer
	code := app.Run([]string{"-i", fa, "-o", "-", "--format", "jsonl", "--metric", "hamming", "--quiet"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	if errBuf.Len() != 0 {
		t.Fatalf("--quiet should silence stderr: %s", errBuf.String())
	}
	dec := json.NewDecoder(&out)
	var got []api.NeighborV1
	for {
		var n api.NeighborV1
		if err := dec.Decode(&n); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		got = append(got, n)
	}
	want := []api.NeighborV1{
		{QueryID: "A", NeighborID: "B", Score: 1, Metric: "hamming"},
		{QueryID: "B", NeighborID: "A", Score: 1, Metric: "hamming"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestEndToEnd_ConfigDefaultsAndFlagPrecedence(t *testing.T) {
	fa := write(t, "two.fa", ">A\nAAAA\n>B\nAAAT\n")
	cfg := write(t, "alnn.yaml", "metric: hamming\nformat: jsonl\nheader: true\n")
	out := filepath.Join(t.TempDir(), "nn.tsv")

	code, stderr := run(t, "-i", fa, "-o", out, "--config", cfg, "--format", "tsv")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "query_id\tneighbor_id\tscore\nA\tB\t1\nB\tA\t1\n"
	if string(data) != want {
		t.Fatalf("got %q want %q", data, want)
	}
}

func TestEndToEnd_GzipOutput(t *testing.T) {
	fa := write(t, "two.fa", ">A\nAAAA\n>B\nAAAA\n")
	out := filepath.Join(t.TempDir(), "nn.tsv.gz")
	code, stderr := run(t, "-i", fa, "-o", out)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		t.Fatalf("expected gzip magic, got % x", data[:min(len(data), 2)])
	}
}

func TestUsageErrors_Exit2(t *testing.T) {
	fa := write(t, "two.fa", ">A\nAAAA\n>B\nAAAA\n")
	cases := [][]string{
		{"-o", "x.tsv"},
		{"-i", fa},
		{"-i", fa, "-o", "x.tsv", "--metric", "cosine"},
		{"-i", fa, "-o", "x.tsv", "--no-such-flag"},
		{"-i", fa, "-o", "x.tsv", "-n", "-1"},
	}
	for _, argv := range cases {
		if code, _ := run(t, argv...); code != 2 {
			t.Fatalf("%v: want exit 2, got %d", argv, code)
		}
	}
}

func TestCancelledBeforeLoad_Exit130(t *testing.T) {
	fa := write(t, "two.fa", ">A\nAAAA\n>B\nAAAA\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := app.RunContext(ctx, []string{"-i", fa, "-o", filepath.Join(t.TempDir(), "nn.tsv")}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	if code := app.Run([]string{"version"}, &out, io.Discard); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(out.String(), "alnn version ") {
		t.Fatalf("got %q", out.String())
	}
}
