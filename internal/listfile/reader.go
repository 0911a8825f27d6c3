package listfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned for charset names IANA does not know or
// x/text cannot decode.
var ErrUnknownCharset = errors.New("unknown charset")

// ReadLines reads the whole file at path and returns its lines, decoded from
// charset to UTF-8. An empty charset means UTF-8. A leading byte-order mark
// is dropped either way.
func ReadLines(path, charset string) ([]string, error) {
	dec, err := decoder(charset)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return scanLines(transform.NewReader(f, dec))
}

func decoder(charset string) (transform.Transformer, error) {
	charset = strings.ToLower(strings.TrimSpace(charset))
	if charset == "" {
		charset = "utf-8"
	}

	enc, err := Encoding(charset)
	if err != nil {
		return nil, err
	}

	// A BOM wins over the configured charset.
	return unicode.BOMOverride(enc.NewDecoder()), nil
}

// Encoding looks charset up in the IANA index.
func Encoding(charset string) (encoding.Encoding, error) {
	charset = strings.ToLower(strings.TrimSpace(charset))
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownCharset, charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCharset, charset)
	}
	return enc, nil
}

// scanLines splits r at "\n" and drops a trailing "\r". Lines have no length
// limit; a final line without newline is kept.
func scanLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
