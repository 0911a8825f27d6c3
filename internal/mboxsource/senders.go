package mboxsource

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-imap/utf7"
	"github.com/emersion/go-mbox"
	"golang.org/x/text/transform"

	"github.com/emurenMRz/mailsplit/internal/listfile"
)

// MailboxPath maps a UTF-8 mailbox name to its file under dir. Mailbox files
// synced from IMAP are stored with IMAP-UTF7 encoded names.
func MailboxPath(dir, name string) (string, error) {
	encoded, err := utf7.Encoding.NewEncoder().String(name)
	if err != nil {
		return "", fmt.Errorf("invalid mailbox name %q: %w", name, err)
	}
	return filepath.Join(dir, encoded), nil
}

// ReadSenders returns the From addresses of every message in the mbox file at
// path, in mailbox order. Repeated senders are kept once, compared
// case-insensitively. Messages whose headers cannot be parsed are skipped.
func ReadSenders(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parser := &mail.AddressParser{
		// Display names in exotic charsets must not make the address unreadable.
		WordDecoder: &mime.WordDecoder{CharsetReader: charsetReader},
	}

	var senders []string
	seen := map[string]bool{}
	reader := mbox.NewReader(f)
	for i := 0; ; i++ {
		mr, err := reader.NextMessage()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read message %d of %s: %w", i, path, err)
		}

		msg, err := mail.ReadMessage(mr)
		if err != nil {
			slog.Warn("skipping unparsable message", "mbox", path, "index", i, "error", err)
			continue
		}

		from := msg.Header.Get("From")
		if from == "" {
			slog.Debug("message has no From header", "mbox", path, "index", i)
			continue
		}
		addrs, err := parser.ParseList(from)
		if err != nil {
			slog.Warn("skipping invalid From header", "mbox", path, "index", i, "from", from, "error", err)
			continue
		}

		for _, a := range addrs {
			key := strings.ToLower(a.Address)
			if seen[key] {
				continue
			}
			seen[key] = true
			senders = append(senders, a.Address)
		}
	}

	slog.Debug("collected senders", "mbox", path, "count", len(senders))
	return senders, nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	if charset == "" {
		return input, nil
	}
	enc, err := listfile.Encoding(charset)
	if err != nil {
		slog.Debug("undecodable charset in header", "charset", charset, "error", err)
		return input, nil
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
