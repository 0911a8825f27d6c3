package splitter

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/emurenMRz/mailsplit/internal/emaillist"
	"github.com/emurenMRz/mailsplit/internal/listfile"
	"github.com/emurenMRz/mailsplit/internal/mboxsource"
)

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrDestinationWrite  = errors.New("destination write failed")
)

// Options describes one run. Source must already be an absolute or working
// directory relative path; no home expansion happens here.
type Options struct {
	Source  string
	Mbox    bool   // read sender addresses from an mbox file instead of a list
	Charset string // list input only

	Header emaillist.HeaderFunc
	Limit  int // <= 0 means emaillist.DefaultLimit

	FirstOut  string
	RestOut   string
	OutHeader string // empty means listfile.DefaultHeader
	DryRun    bool
}

// Load reads and normalizes the source list.
func Load(opts Options) (emaillist.List, error) {
	var (
		lines []string
		err   error
	)
	if opts.Mbox {
		lines, err = mboxsource.ReadSenders(opts.Source)
	} else {
		lines, err = listfile.ReadLines(opts.Source, opts.Charset)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	list := emaillist.Normalize(lines, opts.Header)
	slog.Debug("loaded list", "source", opts.Source, "lines", len(lines), "entries", len(list))
	return list, nil
}

// Partition loads the source and cuts it at the configured limit.
func Partition(opts Options) (emaillist.Partition, error) {
	list, err := Load(opts)
	if err != nil {
		return emaillist.Partition{}, err
	}
	return emaillist.Split(list, limit(opts)), nil
}

// Run loads, normalizes and splits the source, then writes the first group to
// opts.FirstOut and the rest to opts.RestOut. The source is fully read before
// any output is touched. When the second write fails the first file stays.
func Run(opts Options) (Report, error) {
	p, err := Partition(opts)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		FirstPath:  opts.FirstOut,
		FirstCount: len(p.First),
		RestPath:   opts.RestOut,
		RestCount:  len(p.Rest),
		DryRun:     opts.DryRun,
	}
	if opts.DryRun {
		return report, nil
	}

	header := opts.OutHeader
	if header == "" {
		header = listfile.DefaultHeader
	}

	if err := listfile.Write(opts.FirstOut, header, p.First); err != nil {
		return report, fmt.Errorf("%w: %s: %w", ErrDestinationWrite, opts.FirstOut, err)
	}
	slog.Debug("wrote first file", "path", opts.FirstOut, "entries", len(p.First))

	if err := listfile.Write(opts.RestOut, header, p.Rest); err != nil {
		return report, fmt.Errorf("%w: %s: %w", ErrDestinationWrite, opts.RestOut, err)
	}
	slog.Debug("wrote second file", "path", opts.RestOut, "entries", len(p.Rest))

	return report, nil
}

func limit(opts Options) int {
	if opts.Limit <= 0 {
		return emaillist.DefaultLimit
	}
	return opts.Limit
}
