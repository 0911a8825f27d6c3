package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emurenMRz/mailsplit/internal/config"
	"github.com/emurenMRz/mailsplit/internal/emaillist"
	"github.com/emurenMRz/mailsplit/internal/logging"
	"github.com/emurenMRz/mailsplit/internal/mboxsource"
	"github.com/emurenMRz/mailsplit/internal/splitter"
)

func main() {
	setupLogging()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// setupLogging loads .env before the logger reads LOG_LEVEL and LOG_FORMAT.
func setupLogging() {
	config.LoadDotEnv()
	logging.Setup()
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	opts, err := options(cfg)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	// Process the list based on mode
	switch cfg.Mode {
	case config.ModeSplit:
		err = splitList(opts, cfg.Quiet, stdout)
	case config.ModeValidate:
		err = validateList(opts, stdout)
	case config.ModeShow:
		err = showList(opts, stdout)
	}
	if err != nil {
		slog.Error("run failed", "mode", cfg.Mode, "error", err)
		return 1
	}
	return 0
}

func options(cfg *config.Config) (splitter.Options, error) {
	source := cfg.Source
	if cfg.Mailbox != "" {
		path, err := mboxsource.MailboxPath(cfg.MailboxDir, cfg.Mailbox)
		if err != nil {
			return splitter.Options{}, err
		}
		source = path
	}

	return splitter.Options{
		Source:    source,
		Mbox:      cfg.InputFormat == config.FormatMbox,
		Charset:   cfg.Charset,
		Header:    emaillist.HeaderMarker(cfg.Header),
		Limit:     cfg.Limit,
		FirstOut:  cfg.FirstOut,
		RestOut:   cfg.RestOut,
		OutHeader: cfg.OutHeader,
		DryRun:    cfg.DryRun,
	}, nil
}

func splitList(opts splitter.Options, quiet bool, w io.Writer) error {
	report, err := splitter.Run(opts)
	if err != nil {
		return err
	}
	if !quiet {
		report.Print(w)
	}
	return nil
}

func validateList(opts splitter.Options, w io.Writer) error {
	list, err := splitter.Load(opts)
	if err != nil {
		return err
	}

	results := emaillist.Validate(list)
	if len(results) == 0 {
		fmt.Fprintf(w, "No validation errors found in %d entries.\n", len(list))
		return nil
	}

	for _, result := range results {
		switch result.Status {
		case emaillist.StatusInvalid:
			fmt.Fprintf(w, "Entry %d: %q is invalid (%s)\n", result.Index, result.Entry, result.Detail)
		case emaillist.StatusDisplayName:
			fmt.Fprintf(w, "Entry %d: %q has a display name (%s)\n", result.Index, result.Entry, result.Detail)
		case emaillist.StatusDuplicate:
			fmt.Fprintf(w, "Entry %d: %q is a duplicate (%s)\n", result.Index, result.Entry, result.Detail)
		}
	}
	return nil
}

func showList(opts splitter.Options, w io.Writer) error {
	p, err := splitter.Partition(opts)
	if err != nil {
		return err
	}

	for i, entry := range p.First {
		fmt.Fprintf(w, "%d\tfirst\t%s\n", i, entry)
	}
	for i, entry := range p.Rest {
		fmt.Fprintf(w, "%d\trest\t%s\n", len(p.First)+i, entry)
	}
	return nil
}
