package listfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emurenMRz/mailsplit/internal/emaillist"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clubs.csv")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		charset  string
		expected []string
	}{
		{
			name:     "utf-8 with trailing newline",
			data:     []byte("email;\na@x.com;\n"),
			expected: []string{"email;", "a@x.com;"},
		},
		{
			name:     "crlf line endings",
			data:     []byte("email;\r\na@x.com;\r\n\r\nb@x.com"),
			expected: []string{"email;", "a@x.com;", "", "b@x.com"},
		},
		{
			name:     "utf-8 bom removed",
			data:     []byte("\xef\xbb\xbfemail;\na@x.com;\n"),
			expected: []string{"email;", "a@x.com;"},
		},
		{
			name:     "utf-16le with bom",
			data:     []byte{0xff, 0xfe, 'a', 0, '@', 0, 'x', 0, '\n', 0, 'b', 0},
			expected: []string{"a@x", "b"},
		},
		{
			name:     "windows-1252",
			data:     []byte("caf\xe9@x.com;\n"),
			charset:  "windows-1252",
			expected: []string{"café@x.com;"},
		},
		{
			name:     "charset name is case-insensitive",
			data:     []byte("caf\xe9@x.com\n"),
			charset:  "ISO-8859-1",
			expected: []string{"café@x.com"},
		},
		{
			name:     "last line without newline",
			data:     []byte("a@x.com\nb@x.com"),
			expected: []string{"a@x.com", "b@x.com"},
		},
		{
			name:     "empty file",
			data:     []byte{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.data)

			lines, err := ReadLines(path, tt.charset)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lines)
		})
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "missing.csv"), "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadLinesUnknownCharset(t *testing.T) {
	path := writeFile(t, []byte("a@x.com\n"))

	_, err := ReadLines(path, "no-such-charset")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCharset)
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := Write(path, DefaultHeader, emaillist.List{"a@x.com", "b@x.com"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "email\na@x.com\nb@x.com\n", string(data))
}

func TestWriteEmptyIsHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, Write(path, DefaultHeader, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "email\n", string(data))
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer\n"), 0o644))

	require.NoError(t, Write(path, DefaultHeader, emaillist.List{"a@x.com"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "email\na@x.com\n", string(data))
}

func TestWriteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.csv")

	err := Write(path, DefaultHeader, emaillist.List{"a@x.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadLinesLongLine(t *testing.T) {
	long := strings.Repeat("x", 3*1024*1024)
	path := writeFile(t, []byte("email;\n"+long+"\nb@x.com\n"))

	lines, err := ReadLines(path, "")
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Len(t, lines[1], len(long))
	assert.Equal(t, "b@x.com", lines[2])
}

func TestEncoding(t *testing.T) {
	enc, err := Encoding(" Windows-1252 ")
	require.NoError(t, err)
	got, err := enc.NewDecoder().String("caf\xe9")
	require.NoError(t, err)
	assert.Equal(t, "café", got)

	_, err = Encoding("no-such-charset")
	assert.ErrorIs(t, err, ErrUnknownCharset)
}
