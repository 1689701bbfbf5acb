package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"

	"project-resolver/internal/vfs"
)

// run executes the CLI in-process and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := newRootCmd()
	var out, errOut bytes.Buffer
	c.root.SetOut(&out)
	c.root.SetErr(&errOut)
	c.root.SetArgs(args)
	err := c.root.Execute()
	return out.String(), err
}

func TestResolveInsideZip(t *testing.T) {
	mem, err := vfs.ParseTxtar([]byte(`
-- app/pom.xml --
<project><artifactId>app</artifactId></project>
-- app/src/main/java/org/kie/Bean.java --
package org.kie;
-- bare/src/main/java/org/kie/Bean.java --
package org.kie;
`))
	qt.Assert(t, qt.IsNil(err))
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(vfs.WriteZip(&buf, mem)))
	archive := filepath.Join(t.TempDir(), "src.zip")
	qt.Assert(t, qt.IsNil(os.WriteFile(archive, buf.Bytes(), 0o644)))

	cfg := filepath.Join(t.TempDir(), "none.yaml")
	out, err := run(t, "--config", cfg, "--zip", archive, "resolve",
		"app/src/main/java/org/kie/Bean.java", "bare/src/main/java/org/kie")
	qt.Assert(t, qt.ErrorMatches(err, `config: read .*none.yaml: .*`))
	qt.Check(t, qt.Equals(out, ""))

	qt.Assert(t, qt.IsNil(os.WriteFile(cfg, []byte("use_gitignore: false\n"), 0o644)))
	out, err = run(t, "--config", cfg, "--zip", archive, "resolve",
		"app/src/main/java/org/kie/Bean.java", "bare/src/main/java/org/kie")
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(out, "app/src/main/java/org/kie/Bean.java: org.kie\nbare/src/main/java/org/kie: no package\n"))

	out, err = run(t, "--config", cfg, "--zip", archive, "project", "app/src")
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.StringContains(out, "root: app\n"))

	_, err = run(t, "--config", cfg, "--zip", archive, "new-package", "app/src/main/java/org", "acme")
	qt.Check(t, qt.ErrorIs(err, vfs.ErrReadOnly))
}
