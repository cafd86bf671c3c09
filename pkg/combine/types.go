// File: pkg/combine/types.go
package combine

import (
	"fmt"
	"strings"
)

// Mode selects the merge algorithm. It is derived from the input list,
// never chosen by the caller.
type Mode int

const (
	ModeText Mode = iota // Plain-text concatenation
	ModeCSV              // Row merge of CSV files
)

func (m Mode) String() string {
	switch m {
	case ModeCSV:
		return "csv"
	case ModeText:
		return "text"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Separator controls what is written between two files in text mode.
type Separator int

const (
	SeparatorNewline   Separator = iota // A single "\n"
	SeparatorBlankLine                  // "\n\n"
	SeparatorBanner                     // Blank line, "--- <basename> ---", blank line
	SeparatorNone                       // Nothing; output is an exact concatenation
)

var separatorNames = map[Separator]string{
	SeparatorNewline:   "newline",
	SeparatorBlankLine: "blank-line",
	SeparatorBanner:    "filename",
	SeparatorNone:      "none",
}

func (s Separator) String() string {
	if name, ok := separatorNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Separator(%d)", int(s))
}

// ParseSeparator accepts the canonical names plus the long-form labels
// ("blank line", "--- filename ---").
func ParseSeparator(s string) (Separator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "newline", "nl":
		return SeparatorNewline, nil
	case "blank-line", "blank line", "blank", "blankline":
		return SeparatorBlankLine, nil
	case "filename", "banner", "--- filename ---":
		return SeparatorBanner, nil
	case "none":
		return SeparatorNone, nil
	}
	return 0, &Error{Kind: ConfigurationError, Err: fmt.Errorf("unknown separator %q", s)}
}

// SeparatorNames lists the canonical separator names in declaration order.
func SeparatorNames() []string {
	return []string{"newline", "blank-line", "filename", "none"}
}

// Encoding is the character encoding used for both reading inputs and
// writing the output.
type Encoding int

const (
	EncodingUTF8    Encoding = iota // UTF-8 without byte order mark
	EncodingUTF8BOM                 // UTF-8 with a leading signature
	EncodingLatin1                  // ISO 8859-1
	EncodingASCII                   // 7-bit US-ASCII
)

var encodingNames = map[Encoding]string{
	EncodingUTF8:    "utf-8",
	EncodingUTF8BOM: "utf-8-sig",
	EncodingLatin1:  "latin-1",
	EncodingASCII:   "ascii",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// ParseEncoding maps an encoding label to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "utf-8-sig", "utf8-sig", "utf-8-bom", "utf8bom":
		return EncodingUTF8BOM, nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	case "ascii", "us-ascii":
		return EncodingASCII, nil
	}
	return 0, &Error{Kind: ConfigurationError, Err: fmt.Errorf("unknown encoding %q", s)}
}

// EncodingNames lists the canonical encoding names in declaration order.
func EncodingNames() []string {
	return []string{"utf-8", "utf-8-sig", "latin-1", "ascii"}
}

// Config holds the options for a single combine operation.
type Config struct {
	Separator               Separator // Text mode separator policy.
	SkipCSVHeaderAfterFirst bool      // Drop the first row of every CSV file after the first.
	Encoding                Encoding  // Encoding for inputs and output.
	Atomic                  bool      // Write to a temp file and rename it into place on success.
}

// DefaultConfig returns the options a fresh session starts with.
func DefaultConfig() Config {
	return Config{
		Separator:               SeparatorNewline,
		SkipCSVHeaderAfterFirst: true,
		Encoding:                EncodingUTF8,
	}
}

// Result describes a successful combine operation.
type Result struct {
	OutputPath   string // Final location of the combined file.
	Mode         Mode   // Algorithm that produced it.
	FilesMerged  int    // Inputs that contributed content.
	BytesWritten int64  // Encoded bytes written to the output.
}
