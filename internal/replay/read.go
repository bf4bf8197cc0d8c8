package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/five82/tinct/internal/entry"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

const maxLineBytes = 1024 * 1024

// Read parses every line of r and passes it to fn. Lines that are not JSON
// become unstructured Information entries carrying the raw text. When tail is
// positive only the last tail lines are replayed. An error from fn stops the
// read and is returned as is.
func Read(r io.Reader, tail int, fn func(Record) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if tail <= 0 {
		for scanner.Scan() {
			if err := emit(scanner.Text(), fn); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read log: %w", err)
		}
		return nil
	}

	ring := make([]string, tail)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % tail
		if count < tail {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	start := 0
	if count == tail {
		start = idx
	}
	for i := 0; i < count; i++ {
		if err := emit(ring[(start+i)%tail], fn); err != nil {
			return err
		}
	}
	return nil
}

func emit(line string, fn func(Record) error) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	rec, err := ParseLine([]byte(line))
	if errors.Is(err, ErrNotObject) {
		rec = Record{Entry: entry.Entry{Level: entry.Information, Message: line}}
	}
	return fn(rec)
}

// ReadFile replays the file at path, or standard input for Stdin. It returns
// the byte offset it read up to, which is where a Follow of the same file
// should start. The offset is always 0 for Stdin.
func ReadFile(path string, tail int, fn func(Record) error) (int64, error) {
	if path == Stdin {
		return 0, Read(os.Stdin, tail, fn)
	}
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	cr := &countingReader{r: file}
	err = Read(cr, tail, fn)
	return cr.n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Expand resolves glob patterns (including ** for recursive matches) to file
// paths. Plain paths and Stdin pass through. A pattern matching nothing is an
// error.
func Expand(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if pattern == Stdin || !strings.ContainsAny(pattern, "*?[{") {
			paths = append(paths, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("expand %q: no files match", pattern)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
