package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/emurenMRz/mailsplit/internal/emaillist"
	"github.com/emurenMRz/mailsplit/internal/listfile"
)

const (
	ModeSplit    = "split"
	ModeValidate = "validate"
	ModeShow     = "show"

	FormatList = "list"
	FormatMbox = "mbox"

	DefaultSource   = "~/Documents/clubs.csv"
	DefaultFirstOut = "first_2000_emails.csv"
	DefaultRestOut  = "remaining_emails.csv"
	DefaultLimit    = emaillist.DefaultLimit
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Mode        string
	Source      string
	InputFormat string
	MailboxDir  string
	Mailbox     string
	Charset     string
	Header      string // header marker; empty disables header removal
	Limit       int
	FirstOut    string
	RestOut     string
	OutHeader   string
	DryRun      bool
	Quiet       bool
}

// Load builds the configuration from a .env file, the environment and args,
// in increasing order of precedence. Paths starting with ~ are expanded.
func Load(args []string, output io.Writer) (*Config, error) {
	LoadDotEnv()

	limit := DefaultLimit
	if raw := strings.TrimSpace(os.Getenv("MAILSPLIT_LIMIT")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: MAILSPLIT_LIMIT=%q: %v", ErrInvalidConfig, raw, err)
		}
		limit = n
	}

	header := emaillist.DefaultHeaderMarker
	if v, ok := os.LookupEnv("MAILSPLIT_HEADER"); ok {
		header = v
	}

	cfg := &Config{}
	fs := flag.NewFlagSet("mailsplit", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.StringVar(&cfg.Mode, "mode", ModeSplit, "Operation mode: split, validate, show")
	fs.StringVar(&cfg.Source, "path", getEnv("MAILSPLIT_SOURCE", DefaultSource), "Input list file path")
	fs.StringVar(&cfg.InputFormat, "input-format", getEnv("MAILSPLIT_INPUT_FORMAT", FormatList), "Input format: list, mbox")
	fs.StringVar(&cfg.MailboxDir, "mailbox-dir", getEnv("MAILSPLIT_MAILBOX_DIR", "."), "Directory of mbox files (with -mailbox)")
	fs.StringVar(&cfg.Mailbox, "mailbox", "", "Mailbox name to read senders from; implies -input-format=mbox")
	fs.StringVar(&cfg.Charset, "charset", getEnv("MAILSPLIT_CHARSET", ""), "Input charset (IANA name, default UTF-8)")
	fs.StringVar(&cfg.Header, "header", header, "Header line to drop from the input; empty keeps every line")
	fs.IntVar(&cfg.Limit, "limit", limit, "Number of entries in the first output file")
	fs.StringVar(&cfg.FirstOut, "out1", getEnv("MAILSPLIT_FIRST_OUT", DefaultFirstOut), "First output file path")
	fs.StringVar(&cfg.RestOut, "out2", getEnv("MAILSPLIT_REST_OUT", DefaultRestOut), "Second output file path")
	fs.StringVar(&cfg.OutHeader, "out-header", getEnv("MAILSPLIT_OUT_HEADER", listfile.DefaultHeader), "Header line written to both output files")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Report counts without writing files (for split mode)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress the report (for split mode)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrInvalidConfig, fs.Args())
	}

	if cfg.Mailbox != "" {
		cfg.InputFormat = FormatMbox
	}

	var err error
	if cfg.Source, err = ExpandHome(cfg.Source); err != nil {
		return nil, err
	}
	if cfg.MailboxDir, err = ExpandHome(cfg.MailboxDir); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv copies .env from the working directory into the environment
// without overriding variables that are already set. A missing file is fine.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not loaded", "error", err)
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeSplit, ModeValidate, ModeShow:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	switch c.InputFormat {
	case FormatList, FormatMbox:
	default:
		return fmt.Errorf("%w: unknown input format %q", ErrInvalidConfig, c.InputFormat)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Mailbox == "" && strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("%w: input path is empty", ErrInvalidConfig)
	}
	if c.Mode == ModeSplit && !c.DryRun {
		if c.FirstOut == "" || c.RestOut == "" {
			return fmt.Errorf("%w: output paths must not be empty", ErrInvalidConfig)
		}
		if filepath.Clean(c.FirstOut) == filepath.Clean(c.RestOut) {
			return fmt.Errorf("%w: both outputs point to %s", ErrInvalidConfig, c.FirstOut)
		}
	}
	return nil
}

// ExpandHome replaces a leading "~" or "~/" with the current user's home
// directory. Other paths, including "~user/...", come back unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}
