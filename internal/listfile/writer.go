package listfile

import (
	"bufio"
	"os"

	"github.com/emurenMRz/mailsplit/internal/emaillist"
)

// DefaultHeader is the single column name written as the first line.
const DefaultHeader = "email"

// Write creates or truncates path and writes header followed by one entry per
// line. Entries are written verbatim; every line ends with "\n".
func Write(path, header string, entries emaillist.List) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(file)
	if _, err := w.WriteString(header + "\n"); err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := w.WriteString(string(entry) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
