// Package textutil normalizes source text before it is scanned.
package textutil

import "bytes"

var bom = []byte("\xef\xbb\xbf")

// NormalizeUTF8LF drops a leading UTF-8 BOM, converts CRLF and lone CR to
// LF and replaces invalid byte sequences with the Unicode replacement
// character.
func NormalizeUTF8LF(b []byte) []byte {
	b = bytes.TrimPrefix(b, bom)
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	return bytes.ToValidUTF8(b, []byte("�"))
}
