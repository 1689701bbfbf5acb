package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp/cmpopts"

	"project-resolver/internal/descriptor"
	"project-resolver/internal/project"
)

func TestLoadMissingUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), FileName))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.DeepEquals(c, Default()))
	qt.Check(t, qt.Equals(c.Source, ""))
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), FileName))
	qt.Check(t, qt.ErrorIs(err, fs.ErrNotExist))
}

func TestDefaultYAMLMatchesDefault(t *testing.T) {
	c, err := Parse([]byte(DefaultYAML))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.DeepEquals(c, Default()))
}

func TestParseOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	err := os.WriteFile(path, []byte(`
builds: [Gradle, maven]
use_gitignore: false
extra_source_roots:
  maven:
    - kind: main-java
      dir: src/generated/java
log:
  level: DEBUG
`), 0o644)
	qt.Assert(t, qt.IsNil(err))

	c, err := Read(path)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(c.Source, path))
	qt.Check(t, qt.DeepEquals(c.Builds, []string{"gradle", "maven"}))
	qt.Check(t, qt.IsFalse(c.UseGitignore))
	qt.Check(t, qt.Equals(c.Log.Level, "debug"))
	qt.Check(t, qt.Equals(c.Log.Format, "text"))
	qt.Check(t, qt.DeepEquals(c.Exclude, Default().Exclude))

	opt := c.ProjectOptions(nil)
	qt.Check(t, qt.DeepEquals(opt.Builds, []descriptor.Build{descriptor.Gradle, descriptor.Maven}))
	qt.Check(t, qt.CmpEquals(opt, project.Options{
		Builds:       []descriptor.Build{descriptor.Gradle, descriptor.Maven},
		ExtraRoots:   map[descriptor.Build][]project.SourceRoot{descriptor.Maven: {{Kind: project.MainJava, Dir: "src/generated/java"}}},
		Exclude:      Default().Exclude,
		UseGitignore: false,
	}, cmpopts.IgnoreFields(project.Options{}, "Logger")))
}

func TestParseEmptyDocuments(t *testing.T) {
	for _, doc := range []string{"", "\n", "# nothing here\n"} {
		c, err := Parse([]byte(doc))
		qt.Assert(t, qt.IsNil(err), qt.Commentf("%q", doc))
		qt.Check(t, qt.DeepEquals(c, Default()))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{{
		name: "UnknownKey",
		doc:  "colour: blue\n",
		want: `parse: yaml: unmarshal errors:\n.*field colour not found.*`,
	}, {
		name: "Version",
		doc:  "version: 2\n",
		want: `version must be 1 \(got 2\)`,
	}, {
		name: "Builds",
		doc:  "builds: [maven, ant, maven]\n",
		want: `builds: unknown build "ant"\nbuilds: "maven" listed twice`,
	}, {
		name: "NoBuilds",
		doc:  "builds: []\n",
		want: `builds must list at least one build`,
	}, {
		name: "ExtraRoots",
		doc:  "extra_source_roots:\n  maven:\n    - kind: main-java\n      dir: ../x\n  ant: []\n",
		want: `extra_source_roots: unknown build "ant"\nextra_source_roots.maven\[0\] \(../x\): dir must not contain '..' segments`,
	}, {
		name: "Exclude",
		doc:  "exclude: [a/b]\n",
		want: `exclude\[0\]: pattern "a/b" must be a base name`,
	}, {
		name: "Log",
		doc:  "log: {level: loud, format: xml}\n",
		want: `log.format must be text or json \(got "xml"\)\nlog.level: .*`,
	}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.doc))
			qt.Check(t, qt.ErrorMatches(err, test.want))
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	c := Default()
	c.ExtraSourceRoots = map[string][]project.SourceRoot{"gradle": {{Kind: project.MainKotlin, Dir: "src/gen/kotlin"}}}
	data, err := c.Marshal()
	qt.Assert(t, qt.IsNil(err))
	got, err := Parse(data)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.DeepEquals(got, c))
}
