package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactDefaultFileName(t *testing.T) {
	tests := []struct {
		name     string
		artifact Artifact
		want     string
	}{
		{
			name:     "plain jar",
			artifact: Artifact{ArtifactID: "commons-io", Version: "2.4", Type: "jar"},
			want:     "commons-io-2.4.jar",
		},
		{
			name:     "classifier",
			artifact: Artifact{ArtifactID: "netty", Version: "4.1", Type: "jar", Classifier: "linux-x86_64"},
			want:     "netty-4.1-linux-x86_64.jar",
		},
		{
			name:     "blank classifier ignored",
			artifact: Artifact{ArtifactID: "netty", Version: "4.1", Type: "jar", Classifier: "  "},
			want:     "netty-4.1.jar",
		},
		{
			name:     "ejb maps to jar",
			artifact: Artifact{ArtifactID: "beans", Version: "1.0", Type: "ejb"},
			want:     "beans-1.0.jar",
		},
		{
			name:     "war keeps extension",
			artifact: Artifact{ArtifactID: "portal", Version: "2.0", Type: "war"},
			want:     "portal-2.0.war",
		},
		{
			name:     "explicit extension wins",
			artifact: Artifact{ArtifactID: "odd", Version: "1", Type: "bundle", Extension: "zip"},
			want:     "odd-1.zip",
		},
		{
			name:     "unknown type uses type as extension",
			artifact: Artifact{ArtifactID: "thing", Version: "1", Type: "sar"},
			want:     "thing-1.sar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.artifact.DefaultFileName())
		})
	}
}

func TestArtifactID(t *testing.T) {
	a := Artifact{GroupID: "org.sakai", ArtifactID: "kernel", Version: "1.0", Type: "jar"}
	assert.Equal(t, "org.sakai:kernel:jar:1.0", a.ID())

	a.Classifier = "tests"
	assert.Equal(t, "org.sakai:kernel:jar:tests:1.0", a.ID())
}

func TestScopeNormalize(t *testing.T) {
	assert.Equal(t, ScopeCompile, Scope("").Normalize())
	assert.Equal(t, ScopeRuntime, Scope("Runtime").Normalize())
	assert.Equal(t, ScopeTest, ScopeTest.Normalize())
	assert.True(t, Scope("PROVIDED").Known())
	assert.True(t, Scope("").Known())
	assert.False(t, Scope("import").Known())
}

func TestProjectEffectiveFinalName(t *testing.T) {
	p := Project{ArtifactID: "tool", Version: "3.1"}
	assert.Equal(t, "tool-3.1", p.EffectiveFinalName())

	p.FinalName = "tool"
	assert.Equal(t, "tool", p.EffectiveFinalName())

	assert.Equal(t, "tool", Project{ArtifactID: "tool"}.EffectiveFinalName())
}
