// Package nearjson rewrites the hand-authored materials dialect into JSON.
//
// The dialect is JSON plus two relaxations seen in stimulus files:
// object keys may be bare words (`{s: "..."}`), and strings may be
// single-quoted (`{html: '<p>..</p>'}`). Repair quotes bare keys and
// re-quotes single-quoted strings. Everything else, including the contents of
// strings, is copied through unchanged; the result is left for encoding/json
// to validate.
package nearjson

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SyntaxError reports a lexical problem at a byte offset of the input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// Repair returns src with every bare word key wrapped in double quotes and
// every single-quoted string converted to a double-quoted one.
//
// A bare word is a run of letters, digits and underscores; it is a key when the
// next non-space character is a colon. Keys that are already double-quoted are
// left alone. Colons and quotes inside strings are never treated as structure.
func Repair(src string) (string, error) {
	var b strings.Builder
	b.Grow(len(src) + 16)

	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '"':
			end, err := scanString(src, i, '"')
			if err != nil {
				return "", err
			}
			b.WriteString(src[i:end])
			i = end

		case c == '\'':
			end, err := scanString(src, i, '\'')
			if err != nil {
				return "", err
			}
			writeRequoted(&b, src[i+1:end-1])
			i = end

		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			if !isWordRune(r) {
				b.WriteString(src[i : i+size])
				i += size
				continue
			}
			end := scanWord(src, i)
			word := src[i:end]
			if followedByColon(src, end) {
				b.WriteByte('"')
				b.WriteString(word)
				b.WriteByte('"')
			} else {
				b.WriteString(word)
			}
			i = end
		}
	}
	return b.String(), nil
}

// scanString returns the offset just past the closing quote of the string
// opening at src[start]. Backslash escapes the following byte.
func scanString(src string, start int, quote byte) (int, error) {
	escaped := false
	for i := start + 1; i < len(src); i++ {
		c := src[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case quote:
			return i + 1, nil
		}
	}
	return 0, &SyntaxError{Offset: start, Msg: "unterminated string"}
}

// writeRequoted emits the body of a single-quoted string as a JSON string.
// \' becomes ', a bare " gets escaped, other escapes pass through.
func writeRequoted(b *strings.Builder, body string) {
	b.WriteByte('"')
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body) && body[i+1] == '\'':
			b.WriteByte('\'')
			i++
		case c == '\\' && i+1 < len(body):
			b.WriteByte(c)
			b.WriteByte(body[i+1])
			i++
		case c == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}

func scanWord(src string, start int) int {
	i := start
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if !isWordRune(r) {
			break
		}
		i += size
	}
	return i
}

func followedByColon(src string, from int) bool {
	for i := from; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case ':':
			return true
		default:
			return false
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
