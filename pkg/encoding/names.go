// Package encoding repairs file names written by tools that predate UTF-8,
// such as texture references inside old .mtl files.
package encoding

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
)

// Legacy lists the encodings tried, in order, for names that are not
// valid UTF-8.
var Legacy = []encoding.Encoding{korean.EUCKR, charmap.Windows1252}

// NameToUTF8 returns s unchanged when it is valid UTF-8. Otherwise it
// returns the first Legacy decoding that produces no replacement
// characters, or s as-is when none does.
func NameToUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	for _, enc := range Legacy {
		out, err := enc.NewDecoder().String(s)
		if err == nil && !strings.ContainsRune(out, utf8.RuneError) {
			return out
		}
	}
	return s
}

// SlashPath converts Windows separators to forward slashes.
func SlashPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
