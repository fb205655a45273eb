package ocorren

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// maxLineBytes bounds a single record line.
const maxLineBytes = 1 << 20

// ReadLines splits r into lines, dropping line terminators (\n or \r\n).
// A trailing newline does not produce an extra empty line.
//
// charset is "utf-8" (default, ""), "latin1"/"iso-8859-1" or
// "windows-1252"/"cp1252". UTF-8 input with invalid bytes fails with
// ErrInvalidEncoding naming the line.
func ReadLines(r io.Reader, charset string) ([]string, error) {
	enc, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var lines []string
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if enc == nil && !utf8.ValidString(line) {
			return nil, fmt.Errorf("%w: line %d is not valid utf-8", ErrInvalidEncoding, len(lines)+1)
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// lookupCharset returns nil for UTF-8.
func lookupCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("%w: unsupported charset %q", ErrInvalidEncoding, name)
}
