package table

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/primpoly/factorcalc/internal/errors"
)

// tableFiles maps each covered prime base to its conventional file name:
// zero-padded two-digit base with a "minus" suffix for p^n - 1.
var tableFiles = map[uint]string{
	2:  "c02minus.txt",
	3:  "c03minus.txt",
	5:  "c05minus.txt",
	6:  "c06minus.txt",
	7:  "c07minus.txt",
	10: "c10minus.txt",
	11: "c11minus.txt",
	12: "c12minus.txt",
}

// Covered reports whether the table set carries factorizations for base p.
func Covered(p uint) bool {
	_, ok := tableFiles[p]
	return ok
}

// FileName returns the conventional table file name for base p, e.g.
// "c03minus.txt" for p = 3. The second result is false when p is not
// covered.
func FileName(p uint) (string, bool) {
	name, ok := tableFiles[p]
	return name, ok
}

// Locator supplies the logical factorization lines for a prime base.
// Production code binds it to a filesystem search; tests bind it to
// in-memory fixtures.
type Locator interface {
	// LogicalLines returns the assembled factorization lines for base p.
	// ok is false when p is not covered by the table set, which is a
	// normal not-found rather than an error. A covered base whose resource
	// cannot be located yields a *apperrors.MissingTableError.
	LogicalLines(p uint) (lines []string, ok bool, err error)
}

// FSLocator finds table files anywhere under a root directory by recursive
// search. When duplicate file names exist in different subdirectories the
// first match in lexical walk order wins; keep the table set free of
// duplicates to avoid depending on traversal order.
type FSLocator struct {
	// Root is the directory tree to search.
	Root string
}

// NewFSLocator creates a locator searching under root.
func NewFSLocator(root string) *FSLocator {
	return &FSLocator{Root: root}
}

// LogicalLines implements Locator by locating the table file for p and
// assembling its factorization lines.
func (l *FSLocator) LogicalLines(p uint) ([]string, bool, error) {
	name, covered := tableFiles[p]
	if !covered {
		return nil, false, nil
	}

	path, err := l.find(name)
	if err != nil {
		return nil, false, err
	}
	if path == "" {
		return nil, false, &apperrors.MissingTableError{P: p, FileName: name, Root: l.Root}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, false, apperrors.WrapError(err, "opening factor table %s", path)
	}
	defer f.Close()

	lines, err := Assemble(f)
	if err != nil {
		return nil, false, apperrors.WrapError(err, "reading factor table %s", path)
	}
	return lines, true, nil
}

// find walks the root tree for a regular file with the given name and
// returns its path, or "" when absent.
func (l *FSLocator) find(name string) (string, error) {
	var found string
	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", apperrors.WrapError(err, "searching %s for %s", l.Root, name)
	}
	return found, nil
}

// MemLocator serves tables from in-memory text, keyed by base. It mirrors
// FSLocator semantics: bases present in Tables are covered; bases listed in
// Missing simulate a covered base whose file has vanished.
type MemLocator struct {
	Tables  map[uint]string
	Missing map[uint]bool
}

// LogicalLines implements Locator from the in-memory fixtures.
func (m *MemLocator) LogicalLines(p uint) ([]string, bool, error) {
	if m.Missing[p] {
		name := tableFiles[p]
		if name == "" {
			name = fmt.Sprintf("c%02dminus.txt", p)
		}
		return nil, false, &apperrors.MissingTableError{P: p, FileName: name, Root: "(memory)"}
	}
	text, ok := m.Tables[p]
	if !ok {
		return nil, false, nil
	}
	lines, err := Assemble(strings.NewReader(text))
	if err != nil {
		return nil, false, err
	}
	return lines, true, nil
}
