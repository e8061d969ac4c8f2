// internal/fasta/ids.go
package fasta

import (
	"bufio"
	"errors"

	"github.com/shenwei356/xopen"

	"alnn/internal/common"
)

// ReadIDs reads a plain-text identifier list, one ID per line. Lines are
// trimmed, blank lines skipped and repeats dropped (first occurrence kept).
// An empty file yields an empty, non-nil list.
func ReadIDs(path string) ([]string, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		if errors.Is(err, xopen.ErrNoContent) {
			return []string{}, nil
		}
		return nil, &IOError{Path: path, Err: err}
	}
	defer fh.Close()

	var lines []string
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return common.UniqueTrimmed(lines), nil
}
