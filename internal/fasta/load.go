// internal/fasta/load.go
package fasta

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"

	"alnn/internal/seqset"
)

// Load parses an aligned multi-FASTA file into a validated collection.
// Compressed inputs (gz, xz, zst, bz2) are detected by the reader; "-" reads
// stdin. The record ID is the first whitespace-delimited header token and the
// sequence is kept verbatim, gaps and case included.
//
// Errors: *EmptyInputError when no record is found, *IOError on read or
// format failures, *seqset.LengthMismatchError when a record's length differs
// from the first record's, or ctx.Err() if ctx is cancelled mid-read.
func Load(ctx context.Context, path string) (*seqset.Collection, error) {
	records, err := ReadRecords(ctx, path)
	if err != nil {
		return nil, err
	}
	return seqset.NewCollection(records)
}

// ReadRecords parses every record of path without length validation.
func ReadRecords(ctx context.Context, path string) ([]seqset.Record, error) {
	r, err := fastx.NewReader(seq.Unlimit, path, "")
	if err != nil {
		if isEmptyFile(path) {
			return nil, &EmptyInputError{Path: path}
		}
		return nil, &IOError{Path: path, Err: err}
	}
	defer r.Close()

	var records []seqset.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			if len(records) == 0 && isEmptyFile(path) {
				return nil, &EmptyInputError{Path: path}
			}
			return nil, &IOError{Path: path, Err: err}
		}
		// the reader reuses its buffers between calls
		records = append(records, seqset.Record{
			ID:  string(rec.ID),
			Seq: bytes.Clone(rec.Seq.Seq),
		})
	}
	if len(records) == 0 {
		return nil, &EmptyInputError{Path: path}
	}
	return records, nil
}

func isEmptyFile(path string) bool {
	if path == "-" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Size() == 0
}
