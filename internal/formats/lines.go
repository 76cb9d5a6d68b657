package formats

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// lineReader reads the line-based formats. Lines starting with '#' are
// comments and are skipped.
type lineReader struct {
	scanner *bufio.Scanner
	number  int
}

func newLineReader(r io.Reader) *lineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &lineReader{scanner: s}
}

// next returns the next non-comment line.
func (l *lineReader) next(what string) (string, error) {
	for l.scanner.Scan() {
		l.number++
		line := strings.TrimSuffix(l.scanner.Text(), "\r")
		if strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
	if err := l.scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("line %d: expected %s, found end of file", l.number+1, what)
}

// header consumes the first line and checks it is exactly want.
func (l *lineReader) header(want string) error {
	line, err := l.next("the header `" + want + "`")
	if err != nil {
		return err
	}
	if strings.TrimSpace(line) != want {
		return fmt.Errorf("line %d: expected the header `%s`, found `%s`", l.number, want, truncate(line))
	}
	return nil
}

func (l *lineReader) count(what string) (int, error) {
	line, err := l.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(strings.TrimSpace(line), 10, 31)
	if err != nil {
		return 0, fmt.Errorf("line %d: could not read %s: `%s` is not a number", l.number, what, truncate(line))
	}
	return int(n), nil
}

func (l *lineReader) fraction(what string) (*big.Rat, error) {
	line, err := l.next(what)
	if err != nil {
		return nil, err
	}
	r, ok := new(big.Rat).SetString(strings.TrimSpace(line))
	if !ok {
		return nil, fmt.Errorf("line %d: could not read %s: `%s` is not a fraction", l.number, what, truncate(line))
	}
	return r, nil
}

const maxPreallocatedEvents = 64

func (l *lineReader) trace(index int) (Trace, error) {
	n, err := l.count(fmt.Sprintf("the number of events of trace %d", index))
	if err != nil {
		return nil, err
	}
	// The count is untrusted: grow with the events actually present.
	trace := make(Trace, 0, min(n, maxPreallocatedEvents))
	for i := 0; i < n; i++ {
		event, err := l.next(fmt.Sprintf("event %d of trace %d", i, index))
		if err != nil {
			return nil, err
		}
		trace = append(trace, event)
	}
	return trace, nil
}

// end checks that nothing but comments and blank lines follow.
func (l *lineReader) end() error {
	for l.scanner.Scan() {
		l.number++
		line := strings.TrimSpace(l.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return fmt.Errorf("line %d: unexpected content after the last trace: `%s`", l.number, truncate(line))
	}
	return l.scanner.Err()
}

func truncate(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
