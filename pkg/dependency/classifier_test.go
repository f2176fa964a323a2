package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/testutil"
	"github.com/arthur-debert/warforge/pkg/types"
)

func artifact(t *testing.T, fs types.FS, group, id, version, typ string, scope types.Scope) types.Artifact {
	t.Helper()
	a := types.Artifact{GroupID: group, ArtifactID: id, Version: version, Type: typ, Scope: scope}
	a.File = "/repo/" + group + "/" + a.DefaultFileName()
	testutil.WriteFile(t, fs, a.File, a.ID())
	return a
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		typ  string
		kind Kind
	}{
		{"jar", Library},
		{"", Library},
		{"ejb", Library},
		{"ejb-client", Library},
		{"tld", TldDescriptor},
		{"par", PackedModule},
		{"war", NestedOverlay},
		{"WAR", NestedOverlay},
		{"pom", Unsupported},
		{"ear", Unsupported},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, KindOf(tt.typ), "type %q", tt.typ)
	}
	assert.Equal(t, "overlay", NestedOverlay.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestScopeFilter(t *testing.T) {
	f := RuntimeScopeFilter()
	assert.True(t, f.Includes(types.ScopeCompile))
	assert.True(t, f.Includes(""))
	assert.True(t, f.Includes(types.ScopeRuntime))
	assert.False(t, f.Includes(types.ScopeTest))
	assert.False(t, f.Includes(types.ScopeProvided))
	assert.False(t, f.Includes(types.ScopeSystem))

	f, err := ParseScopeFilter([]string{"compile", " Provided "})
	require.NoError(t, err)
	assert.Equal(t, []string{"compile", "provided"}, f.Scopes())

	_, err = ParseScopeFilter([]string{"import"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestClassifyPlacesByKind(t *testing.T) {
	fs := testutil.NewTestFS()
	artifacts := []types.Artifact{
		artifact(t, fs, "org.lib", "core", "1.0", "jar", types.ScopeCompile),
		artifact(t, fs, "org.tags", "taglib", "2.0", "tld", types.ScopeRuntime),
		artifact(t, fs, "org.jpa", "model", "3.0", "par", types.ScopeCompile),
		artifact(t, fs, "org.ejb", "beans", "1.1", "ejb", types.ScopeCompile),
		artifact(t, fs, "org.skin", "skin", "1.0", "war", types.ScopeCompile),
		artifact(t, fs, "org.docs", "manual", "1.0", "pdf", types.ScopeCompile),
	}

	decisions, err := NewClassifier(fs, DefaultOptions()).Classify(artifacts)
	require.NoError(t, err)
	require.Len(t, decisions, len(artifacts))

	targets := make([]string, 0, len(decisions))
	for _, d := range Placements(decisions) {
		targets = append(targets, d.Target)
	}
	assert.Equal(t, []string{
		"WEB-INF/lib/core-1.0.jar",
		"WEB-INF/tld/taglib-2.0.tld",
		"WEB-INF/lib/model-3.0.jar",
		"WEB-INF/lib/beans-1.1.jar",
	}, targets)

	overlays := Overlays(decisions)
	require.Len(t, overlays, 1)
	assert.Equal(t, "skin", overlays[0].Artifact.ArtifactID)
	assert.Empty(t, overlays[0].Target)

	assert.True(t, decisions[5].Skipped)
	assert.Equal(t, Unsupported, decisions[5].Kind)
}

func TestClassifyPrefixesDuplicates(t *testing.T) {
	fs := testutil.NewTestFS()
	artifacts := []types.Artifact{
		artifact(t, fs, "org.alpha", "util", "1.0", "jar", types.ScopeCompile),
		artifact(t, fs, "org.beta", "util", "1.0", "jar", types.ScopeRuntime),
		artifact(t, fs, "org.gamma", "other", "1.0", "jar", types.ScopeCompile),
	}

	decisions, err := NewClassifier(fs, DefaultOptions()).Classify(artifacts)
	require.NoError(t, err)

	assert.True(t, decisions[0].Duplicate)
	assert.True(t, decisions[1].Duplicate)
	assert.False(t, decisions[2].Duplicate)
	assert.Equal(t, "WEB-INF/lib/org.alpha-util-1.0.jar", decisions[0].Target)
	assert.Equal(t, "WEB-INF/lib/org.beta-util-1.0.jar", decisions[1].Target)
	assert.NotEqual(t, decisions[0].Target, decisions[1].Target)
	assert.Equal(t, "WEB-INF/lib/other-1.0.jar", decisions[2].Target)
}

func TestClassifyDuplicateDetectionSeesExcludedArtifacts(t *testing.T) {
	fs := testutil.NewTestFS()
	artifacts := []types.Artifact{
		artifact(t, fs, "org.alpha", "util", "1.0", "jar", types.ScopeCompile),
		artifact(t, fs, "org.test", "util", "1.0", "jar", types.ScopeTest),
	}

	decisions, err := NewClassifier(fs, DefaultOptions()).Classify(artifacts)
	require.NoError(t, err)

	assert.Equal(t, "WEB-INF/lib/org.alpha-util-1.0.jar", decisions[0].Target)
	assert.True(t, decisions[1].Skipped)
}

func TestClassifySkipsRuntimeInvisibleAndOptional(t *testing.T) {
	fs := testutil.NewTestFS()
	optional := artifact(t, fs, "org.opt", "extra", "1.0", "jar", types.ScopeCompile)
	optional.Optional = true
	artifacts := []types.Artifact{
		artifact(t, fs, "org.test", "junit", "4.13", "jar", types.ScopeTest),
		artifact(t, fs, "javax", "servlet-api", "3.0", "jar", types.ScopeProvided),
		artifact(t, fs, "com.sun", "tools", "1.8", "jar", types.ScopeSystem),
		optional,
	}

	decisions, err := NewClassifier(fs, DefaultOptions()).Classify(artifacts)
	require.NoError(t, err)
	for _, d := range decisions {
		assert.True(t, d.Skipped, d.Artifact.ID())
		assert.Empty(t, d.Target)
	}
	assert.Equal(t, "scope test", decisions[0].Reason)
	assert.Equal(t, "optional", decisions[3].Reason)
	assert.Empty(t, Placements(decisions))
}

func TestClassifyMissingFileIsResolutionGap(t *testing.T) {
	fs := testutil.NewTestFS()
	missing := types.Artifact{GroupID: "org", ArtifactID: "ghost", Version: "1", Type: "jar", File: "/repo/ghost-1.jar"}

	_, err := NewClassifier(fs, DefaultOptions()).Classify([]types.Artifact{missing})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrResolutionGap))

	unresolved := types.Artifact{GroupID: "org", ArtifactID: "ghost", Version: "1", Type: "jar"}
	_, err = NewClassifier(fs, DefaultOptions()).Classify([]types.Artifact{unresolved})
	assert.True(t, errors.IsErrorCode(err, errors.ErrResolutionGap))
}

func TestClassifyMissingFileOfExcludedArtifactIsIgnored(t *testing.T) {
	fs := testutil.NewTestFS()
	testOnly := types.Artifact{GroupID: "org", ArtifactID: "ghost", Version: "1", Type: "jar", Scope: types.ScopeTest}

	decisions, err := NewClassifier(fs, DefaultOptions()).Classify([]types.Artifact{testOnly})
	require.NoError(t, err)
	assert.True(t, decisions[0].Skipped)
}

func TestClassifyResidualConflictKeepsFirst(t *testing.T) {
	fs := testutil.NewTestFS()
	// a par is renamed to .jar and lands on the jar's name
	artifacts := []types.Artifact{
		artifact(t, fs, "org.same", "model", "1.0", "jar", types.ScopeCompile),
		artifact(t, fs, "org.same", "model", "1.0", "par", types.ScopeCompile),
	}

	decisions, err := NewClassifier(fs, DefaultOptions()).Classify(artifacts)
	require.NoError(t, err)

	assert.False(t, decisions[0].Skipped)
	assert.Equal(t, "WEB-INF/lib/model-1.0.jar", decisions[0].Target)
	assert.True(t, decisions[1].Skipped)
	assert.Contains(t, decisions[1].Reason, "placement conflict")
	assert.Len(t, Placements(decisions), 1)
}
