// Package scanner provides text file discovery for the freqwatch pipeline.
//
// The scanner traverses a directory tree and reports every regular file
// whose name ends with the configured suffix. Each Scan call is an
// independent, fresh walk; no state is carried between passes, so the
// producer can repeat passes on its interval with consistent results.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	freqerrors "github.com/mzielinski/freqwatch/internal/errors"
	"github.com/mzielinski/freqwatch/internal/logging"
)

// DefaultSuffix is the file name suffix selected by default. The match is
// case-sensitive: "NOTES.TXT" is not selected.
const DefaultSuffix = ".txt"

// VisitFunc receives each discovered file path. Returning an error aborts
// the walk and surfaces the error from Scan.
type VisitFunc func(path string) error

// Scanner discovers matching files under a root directory.
type Scanner struct {
	suffix string
	logger logging.Logger
}

// NewScanner creates a scanner selecting DefaultSuffix files.
func NewScanner(logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.Discard()
	}

	return &Scanner{
		suffix: DefaultSuffix,
		logger: logger.WithComponent("scanner"),
	}
}

// Scan performs one complete recursive walk of root, invoking visit for
// every matching file. Traversal order is unspecified.
//
// Cancellation is observed between directory entries and returned
// unwrapped, so callers can tell a cancelled pass from a failed one. Any
// other walk failure is returned as a recoverable scan error that aborts
// only this pass.
func (s *Scanner) Scan(ctx context.Context, root string, visit VisitFunc) error {
	matched := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !strings.HasSuffix(d.Name(), s.suffix) {
			return nil
		}

		// Symlinks count when their target is a regular file; other
		// non-regular entries (and dangling links) are skipped.
		if !d.Type().IsRegular() {
			if d.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
		}

		matched++

		return visit(path)
	})

	if err != nil {
		if freqerrors.IsCancellation(err) {
			return err
		}

		return freqerrors.NewScanError("scan pass failed", err).WithPath(root)
	}

	s.logger.Debug(ctx, "scan pass complete", "root", root, "matched", matched)

	return nil
}
