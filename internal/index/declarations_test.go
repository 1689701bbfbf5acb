package index

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestScan(t *testing.T) {
	tests := []struct {
		testName string
		lang     string
		src      string
		want     Declaration
	}{{
		testName: "JavaClass",
		lang:     "java",
		src: `/*
 * package fake.header;
 */

package org.kie.test;

import java.util.List;

public class Bean {
}
`,
		want: Declaration{Package: "org.kie.test", Kind: "class", Type: "Bean", Line: 5},
	}, {
		testName: "JavaDefaultPackage",
		lang:     "java",
		src:      "public final class Bean {}\n",
		want:     Declaration{Kind: "class", Type: "Bean"},
	}, {
		testName: "JavaRecordCRLF",
		lang:     "java",
		src:      "\xef\xbb\xbfpackage  a . b ;\r\n\r\nrecord Point(int x, int y) {}\r\n",
		want:     Declaration{Package: "a.b", Kind: "record", Type: "Point", Line: 1},
	}, {
		testName: "JavaCommentedOutPackage",
		lang:     "java",
		src:      "// package wrong;\ninterface Loader {}\n",
		want:     Declaration{Kind: "interface", Type: "Loader"},
	}, {
		testName: "JavaAnnotationType",
		lang:     "java",
		src:      "package x;\npublic @interface Marker {}\n",
		want:     Declaration{Package: "x", Kind: "interface", Type: "Marker", Line: 1},
	}, {
		testName: "Kotlin",
		lang:     "kt",
		src:      "\npackage org.acme.`fun`\n\ndata class Item(val id: Int)\n",
		want:     Declaration{Package: "org.acme.fun", Kind: "class", Type: "Item", Line: 2},
	}, {
		testName: "KotlinObject",
		lang:     "kt",
		src:      "object Registry\n",
		want:     Declaration{Kind: "object", Type: "Registry"},
	}, {
		testName: "UnknownLanguage",
		lang:     "",
		src:      "package x;",
		want:     Declaration{Kind: "file"},
	}}
	for _, test := range tests {
		t.Run(test.testName, func(t *testing.T) {
			qt.Assert(t, qt.Equals(Scan(test.lang, []byte(test.src)), test.want))
		})
	}
}

func TestLangByExt(t *testing.T) {
	qt.Check(t, qt.Equals(LangByExt(".JAVA"), "java"))
	qt.Check(t, qt.Equals(LangByExt(".kt"), "kt"))
	qt.Check(t, qt.Equals(LangByExt(".drl"), ""))
}
