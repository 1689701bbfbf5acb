package vfs

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "."},
		{"/", "."},
		{"/a/b/", "a/b"},
		{"a/./b", "a/b"},
		{`a\b\c`, "a/b/c"},
		{"a/b/../c", "a/c"},
	}
	for _, test := range tests {
		got, err := Clean(test.in)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.Equals(got, test.want), qt.Commentf("in %q", test.in))
	}
	_, err := Clean("a/../..")
	qt.Assert(t, qt.ErrorIs(err, ErrInvalidPath))
}

func TestPathNavigation(t *testing.T) {
	p := MustPath("mem", "/proj/src/main/java/Bean.java")
	qt.Check(t, qt.Equals(p.String(), "mem:///proj/src/main/java/Bean.java"))
	qt.Check(t, qt.Equals(p.Base(), "Bean.java"))
	qt.Check(t, qt.Equals(p.Parent().Name(), "proj/src/main/java"))

	root := MustPath("mem", "/")
	qt.Check(t, qt.IsTrue(root.IsRoot()))
	qt.Check(t, qt.Equals(root.Parent(), root))
	qt.Check(t, qt.Equals(MustPath("mem", "proj").Parent(), root))
	qt.Check(t, qt.Equals(root.Join("a", "", "b").Name(), "a/b"))

	rel, ok := p.Rel(MustPath("mem", "proj/src"))
	qt.Check(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(rel, "main/java/Bean.java"))

	_, ok = MustPath("mem", "proj/srcx").Rel(MustPath("mem", "proj/src"))
	qt.Check(t, qt.IsFalse(ok))
	_, ok = p.Rel(MustPath("file", "proj"))
	qt.Check(t, qt.IsFalse(ok))

	rel, ok = p.Rel(root)
	qt.Check(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(rel, p.Name()))
}

func TestParseURI(t *testing.T) {
	p, err := ParseURI("zip:///a/b")
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(p, MustPath("zip", "a/b")))

	p, err = ParseURI(Root(NewMem()).String())
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.IsTrue(p.IsRoot()))

	_, err = ParseURI("/no/scheme")
	qt.Check(t, qt.ErrorIs(err, ErrInvalidPath))
}

func TestSchemeMismatch(t *testing.T) {
	m := NewMem()
	_, err := Stat(m, MustPath("file", "x"))
	qt.Check(t, qt.ErrorIs(err, ErrInvalidPath))
	_, err = Stat(m, Path{})
	qt.Check(t, qt.ErrorIs(err, ErrInvalidPath))
}

func TestMemFS(t *testing.T) {
	m := NewMem()
	qt.Assert(t, qt.IsNil(m.WriteFile("a/b/c.txt", []byte("hello"))))
	qt.Assert(t, qt.IsNil(m.MkdirAll("a/empty")))
	qt.Assert(t, qt.IsNil(m.MkdirAll("a/empty")))

	qt.Check(t, qt.IsTrue(IsDir(m, MustPath("mem", "a/b"))))
	qt.Check(t, qt.IsTrue(IsDir(m, MustPath("mem", "a/empty"))))
	qt.Check(t, qt.IsTrue(IsFile(m, MustPath("mem", "a/b/c.txt"))))

	data, err := ReadFile(m, MustPath("mem", "a/b/c.txt"))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(string(data), "hello"))

	err = m.MkdirAll("a/b/c.txt/d")
	qt.Check(t, qt.ErrorIs(err, fs.ErrExist))
	err = m.WriteFile("a/b", nil)
	qt.Check(t, qt.ErrorIs(err, fs.ErrExist))

	entries, err := ReadDir(m, MustPath("mem", "a"))
	qt.Assert(t, qt.IsNil(err))
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	qt.Check(t, qt.DeepEquals(names, []string{"b", "empty"}))

	qt.Assert(t, qt.IsNil(m.RemoveAll("a/b")))
	qt.Check(t, qt.IsFalse(IsDir(m, MustPath("mem", "a/b"))))
	qt.Check(t, qt.IsTrue(IsDir(m, MustPath("mem", "a/empty"))))
	qt.Check(t, qt.IsNil(m.RemoveAll("nope")))
}

func TestFromTxtar(t *testing.T) {
	m, err := ParseTxtar([]byte(`
-- proj/pom.xml --
<project/>
-- proj/src/main/resources/ --
`))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.IsTrue(IsFile(m, MustPath("mem", "proj/pom.xml"))))
	qt.Check(t, qt.IsTrue(IsDir(m, MustPath("mem", "proj/src/main/resources"))))
}

func TestOSConvert(t *testing.T) {
	dir := t.TempDir()
	qt.Assert(t, qt.IsNil(os.MkdirAll(filepath.Join(dir, "proj", "src"), 0o755)))
	o, err := OS(dir)
	qt.Assert(t, qt.IsNil(err))

	p, err := o.Convert(filepath.Join(dir, "proj", "src"))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(p, MustPath("file", "proj/src")))
	qt.Check(t, qt.IsTrue(IsDir(o, p)))

	native, err := o.Native(p)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(native, filepath.Join(dir, "proj", "src")))

	_, err = o.Convert(filepath.Dir(dir))
	qt.Check(t, qt.ErrorIs(err, ErrInvalidPath))

	qt.Assert(t, qt.IsNil(WriteFile(o, p.Join("x", "y.txt"), []byte("y"))))
	data, err := os.ReadFile(filepath.Join(dir, "proj", "src", "x", "y.txt"))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(string(data), "y"))
}

func TestZipRoundTrip(t *testing.T) {
	m, err := ParseTxtar([]byte(`
-- proj/pom.xml --
<project/>
-- proj/src/main/java/org/ --
`))
	qt.Assert(t, qt.IsNil(err))

	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(WriteZip(&buf, m)))
	z, err := NewZip(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	qt.Assert(t, qt.IsNil(err))
	defer z.Close()

	qt.Check(t, qt.IsTrue(IsFile(z, MustPath("zip", "proj/pom.xml"))))
	qt.Check(t, qt.IsTrue(IsDir(z, MustPath("zip", "proj/src/main/java/org"))))

	var again bytes.Buffer
	qt.Assert(t, qt.IsNil(WriteZip(&again, m)))
	qt.Check(t, qt.IsTrue(bytes.Equal(buf.Bytes(), again.Bytes())))

	err = MkdirAll(z, MustPath("zip", "x"))
	qt.Check(t, qt.ErrorIs(err, ErrReadOnly))
	qt.Check(t, qt.IsTrue(errors.Is(err, ErrReadOnly)))
}
