package table

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	// headerPattern marks the end of the free-form comment section, e.g.
	//    n  #Fac  Factorisation
	headerPattern = regexp.MustCompile(`^\s*n\s*#Fac\s+Factorisation`)

	// continuationPattern matches lines continued on the next physical
	// line: either a number split by a trailing backslash, e.g.
	//    306  19  3^3.7.19. ... .755824884241793\
	//             47083438319
	// or a factor list whose separator dot ends the line, e.g.
	//    300  28  3^2.5^3. ... .13334701.
	//             1182468601.1133836730401
	continuationPattern = regexp.MustCompile(`(\\|\.)$`)
)

// Assemble reads raw table text and returns the logical factorization
// lines: everything before (and including) the header is dropped, and
// continued physical lines are joined. A trailing backslash is removed at
// the join point since it splits a number mid-digits; a trailing dot is
// kept since it separates factors.
func Assemble(r io.Reader) ([]string, error) {
	var (
		lines        []string
		foundHeader  bool
		continuation bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")

		if headerPattern.MatchString(line) {
			foundHeader = true
			continue
		}
		if !foundHeader {
			continue
		}

		if !continuation {
			continuation = continuationPattern.MatchString(line)
			lines = append(lines, line)
			continue
		}

		// Continuation: glue onto the pending line, dropping the marker
		// backslash and the indentation of the continued text.
		last := len(lines) - 1
		lines[last] = strings.TrimSuffix(lines[last], `\`) + strings.TrimLeft(line, " \t")
		continuation = continuationPattern.MatchString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Term is one prime-power token of a factor-spec: prime or prime^exponent.
// The prime is kept textual so callers can bind it to either integer
// representation.
type Term struct {
	Prime    string
	Exponent int
}

// Entry is one parsed factorization line: the factors of p^N - 1.
type Entry struct {
	N          uint
	NumFactors int
	Terms      []Term
}

// Incomplete reports whether a logical line records a partial factorization,
// marked by a "+" composite remainder. Such entries cannot be used.
func Incomplete(line string) bool {
	return strings.Contains(line, "+")
}

var digitsPattern = regexp.MustCompile(`^\d+$`)

// ParseEntry parses one logical factorization line, e.g.
//
//	20  5  2^4.5^2.11^2.61.1181
func ParseEntry(line string) (Entry, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Entry{}, fmt.Errorf("entry needs <n> <#factors> <factor-spec>, got %q", line)
	}

	n, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return Entry{}, fmt.Errorf("bad exponent field %q: %w", fields[0], err)
	}
	numFactors, err := strconv.Atoi(fields[1])
	if err != nil {
		return Entry{}, fmt.Errorf("bad factor-count field %q: %w", fields[1], err)
	}

	// A continued factor list may retain embedded whitespace from the
	// join; the spec is the concatenation of the remaining fields.
	spec := strings.Join(fields[2:], "")

	entry := Entry{N: uint(n), NumFactors: numFactors}
	total := 0
	for _, token := range strings.Split(spec, ".") {
		if token == "" {
			continue // artifact of a trailing separator dot
		}
		term := Term{Exponent: 1}
		if base, exp, ok := strings.Cut(token, "^"); ok {
			e, err := strconv.Atoi(exp)
			if err != nil || e <= 0 {
				return Entry{}, fmt.Errorf("bad exponent in token %q", token)
			}
			term.Prime, term.Exponent = base, e
		} else {
			term.Prime = token
		}
		if !digitsPattern.MatchString(term.Prime) {
			return Entry{}, fmt.Errorf("bad prime in token %q", token)
		}
		entry.Terms = append(entry.Terms, term)
		total += term.Exponent
	}
	if len(entry.Terms) == 0 {
		return Entry{}, fmt.Errorf("entry %q has no factors", line)
	}
	// The count field tallies prime factors with multiplicity; a mismatch
	// means the line was truncated or miscopied.
	if total != numFactors {
		return Entry{}, fmt.Errorf("entry %q records %d factors but its factor-spec has %d", line, numFactors, total)
	}
	return entry, nil
}

// FindEntry scans the logical lines for the complete factorization of
// p^n - 1. Lines recording partial factorizations and lines that do not
// start with an exponent field are passed over. found is false after a full
// scan without a match.
func FindEntry(lines []string, n uint) (Entry, bool, error) {
	target := strconv.FormatUint(uint64(n), 10)
	for _, line := range lines {
		if Incomplete(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != target {
			continue
		}
		entry, err := ParseEntry(line)
		if err != nil {
			return Entry{}, false, err
		}
		return entry, true, nil
	}
	return Entry{}, false, nil
}
