// Package textenc provides best-effort text encoding detection and decoding
// for source files. Detection never fails: it degrades to the default
// encoding, and only decoding under that fallback can report an error.
package textenc

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is returned when nothing better can be determined.
const DefaultEncoding = "utf-8"

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// encodingAliases maps common cookie spellings to their IANA names.
var encodingAliases = map[string]string{
	"latin-1":     "iso-8859-1",
	"latin1":      "iso-8859-1",
	"latin":       "iso-8859-1",
	"cp1252":      "windows-1252",
	"8859":        "iso-8859-1",
	"iso-latin-1": "iso-8859-1",
}

// codingCookieRe matches a PEP 263-style declaration such as
// "# -*- coding: latin-1 -*-" in a comment line.
var codingCookieRe = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-_.a-zA-Z0-9]+)`)

// Detect returns a best-effort encoding name for data. Byte-order marks win,
// then a coding cookie in the first two lines, then valid UTF-8, then
// byte-level charset detection. It never fails; the fallback is
// DefaultEncoding.
func Detect(data []byte) string {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return DefaultEncoding
	case bytes.HasPrefix(data, bomUTF16BE):
		return "utf-16be"
	case bytes.HasPrefix(data, bomUTF16LE):
		return "utf-16le"
	}

	if name := codingCookie(data); name != "" {
		return name
	}

	if utf8.Valid(data) {
		return DefaultEncoding
	}

	if best, err := chardet.NewTextDetector().DetectBest(data); err == nil && best.Charset != "" {
		return strings.ToLower(best.Charset)
	}
	return DefaultEncoding
}

// codingCookie scans the first two lines for a coding declaration.
func codingCookie(data []byte) string {
	rest := data
	for i := 0; i < 2 && len(rest) > 0; i++ {
		line := rest
		if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
			line = rest[:idx]
			rest = rest[idx+1:]
		} else {
			rest = nil
		}
		if m := codingCookieRe.FindSubmatch(line); m != nil {
			return strings.ToLower(string(m[1]))
		}
	}
	return ""
}

// Decode transcodes data from the named encoding to UTF-8. Unknown encoding
// names fall back to UTF-8 validation; invalid bytes under the fallback are
// an error for the caller to record as a local failure.
func Decode(data []byte, name string) ([]byte, error) {
	name = strings.ToLower(name)
	switch name {
	case "", DefaultEncoding, "utf8", "utf-8-sig", "ascii", "us-ascii":
		return decodeUTF8(data)
	case "utf-16be":
		return decodeUTF16(data, unicode.BigEndian)
	case "utf-16le", "utf-16":
		return decodeUTF16(data, unicode.LittleEndian)
	}

	if alias, ok := encodingAliases[name]; ok {
		name = alias
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		// Unknown name: best-effort fallback.
		return decodeUTF8(data)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

func decodeUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, bomUTF8)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("decode %s: invalid byte sequence", DefaultEncoding)
	}
	return data, nil
}

func decodeUTF16(data []byte, endianness unicode.Endianness) ([]byte, error) {
	dec := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode utf-16: %w", err)
	}
	return out, nil
}

// DecodeFile reads path and returns its content transcoded to UTF-8 together
// with the encoding name that was detected.
func DecodeFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	name := Detect(data)
	out, err := Decode(data, name)
	if err != nil {
		return nil, name, err
	}
	return out, name, nil
}
