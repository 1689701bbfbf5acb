package descriptor

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp/cmpopts"

	"project-resolver/internal/vfs"
)

const projects = `
-- maven/pom.xml --
<project>
  <parent><groupId>org.kie</groupId><version>6.0.0</version></parent>
  <artifactId>kie-test</artifactId>
  <properties><maven.compiler.release>1.8</maven.compiler.release></properties>
</project>
-- gradle/build.gradle --
group = 'org.acme'
version = '1.2'
sourceCompatibility = JavaVersion.VERSION_17
-- gradle/settings.gradle --
rootProject.name = 'acme-app'
-- gradlekts/build.gradle.kts --
plugins { java }
-- gradlekts/gradle.properties --
# hint
java.version=21
-- gomod/go.mod --
module example.com/m

go 1.22
-- badpom/pom.xml --
<project><artifactId>
-- both/pom.xml --
<project><artifactId>from-pom</artifactId></project>
-- both/go.mod --
module example.com/both
-- none/README.md --
nothing here
`

func TestDetect(t *testing.T) {
	fsys, err := vfs.ParseTxtar([]byte(projects))
	qt.Assert(t, qt.IsNil(err))
	root := vfs.Root(fsys)

	tests := []struct {
		testName string
		dir      string
		builds   []Build
		want     Info
		wantOK   bool
		parseErr bool
	}{{
		testName: "Maven",
		dir:      "maven",
		want:     Info{Build: Maven, Group: "org.kie", Module: "kie-test", Version: "6.0.0", JDK: "8"},
		wantOK:   true,
	}, {
		testName: "Gradle",
		dir:      "gradle",
		want:     Info{Build: Gradle, Group: "org.acme", Module: "acme-app", Version: "1.2", JDK: "17"},
		wantOK:   true,
	}, {
		testName: "GradleKotlinDSL",
		dir:      "gradlekts",
		want:     Info{Build: Gradle, Module: "gradlekts", JDK: "21"},
		wantOK:   true,
	}, {
		testName: "GoModule",
		dir:      "gomod",
		want:     Info{Build: Go, Module: "example.com/m"},
		wantOK:   true,
	}, {
		testName: "UnparseablePomStillDetected",
		dir:      "badpom",
		want:     Info{Build: Maven, Module: "badpom"},
		wantOK:   true,
		parseErr: true,
	}, {
		testName: "PriorityMavenFirst",
		dir:      "both",
		want:     Info{Build: Maven, Module: "from-pom"},
		wantOK:   true,
	}, {
		testName: "DisabledBuildIgnored",
		dir:      "both",
		builds:   []Build{Go},
		want:     Info{Build: Go, Module: "example.com/both"},
		wantOK:   true,
	}, {
		testName: "NoDescriptor",
		dir:      "none",
	}, {
		testName: "MissingDirectory",
		dir:      "nowhere",
	}}
	for _, test := range tests {
		t.Run(test.testName, func(t *testing.T) {
			builds := test.builds
			if builds == nil {
				builds = DefaultBuilds
			}
			got, ok := Detect(fsys, root.Join(test.dir), builds)
			qt.Assert(t, qt.Equals(ok, test.wantOK))
			if !ok {
				return
			}
			qt.Check(t, qt.Equals(got.ParseError != "", test.parseErr), qt.Commentf("parse error %q", got.ParseError))
			qt.Check(t, qt.Equals(got.Path.Parent(), root.Join(test.dir)))
			qt.Check(t, qt.CmpEquals(got, test.want, cmpopts.IgnoreFields(Info{}, "Path", "ParseError")))
		})
	}
}

func TestIsDescriptorName(t *testing.T) {
	qt.Check(t, qt.IsTrue(IsDescriptorName("pom.xml", DefaultBuilds)))
	qt.Check(t, qt.IsTrue(IsDescriptorName("build.gradle.kts", DefaultBuilds)))
	qt.Check(t, qt.IsFalse(IsDescriptorName("go.mod", []Build{Maven})))
	qt.Check(t, qt.IsFalse(IsDescriptorName("kmodule.xml", DefaultBuilds)))
}

func TestParseBuild(t *testing.T) {
	b, err := ParseBuild(" Maven ")
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(b, Maven))
	_, err = ParseBuild("ant")
	qt.Check(t, qt.ErrorMatches(err, `unknown build "ant"`))
}

func TestNormalizeJDK(t *testing.T) {
	for in, want := range map[string]string{
		"":       "",
		"21":     "21",
		"1.8":    "8",
		"17.0.1": "17",
		"11-ea":  "11",
	} {
		qt.Check(t, qt.Equals(normalizeJDK(in), want), qt.Commentf("in %q", in))
	}
}
