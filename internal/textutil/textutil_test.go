package textutil

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestNormalizeUTF8LF(t *testing.T) {
	for in, want := range map[string]string{
		"":                       "",
		"a\r\nb\rc\n":            "a\nb\nc\n",
		"\xef\xbb\xbfpackage x;": "package x;",
		"bad\xffbyte":            "bad�byte",
		"keep\xef\xbb\xbfinside": "keep\xef\xbb\xbfinside",
	} {
		qt.Check(t, qt.Equals(string(NormalizeUTF8LF([]byte(in))), want), qt.Commentf("%q", in))
	}
}
