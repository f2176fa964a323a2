package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/warforge/pkg/archive"
	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/testutil"
	"github.com/arthur-debert/warforge/pkg/types"
)

const (
	sourceDir  = "/project/src/main/webapp"
	classesDir = "/project/target/classes"
	outputDir  = "/project/target/shop-1.0"
	workDir    = "/project/target/war/work"
)

func project() types.Project {
	return types.Project{
		GroupID:    "org.example",
		ArtifactID: "shop",
		Version:    "1.0",
		Packaging:  "war",
		BaseDir:    "/project",
	}
}

func baseOptions() Options {
	return Options{
		Project:    project(),
		SourceDir:  sourceDir,
		ClassesDir: classesDir,
		OutputDir:  outputDir,
		WorkDir:    workDir,
	}
}

func jarArtifact(t *testing.T, fs types.FS, group, id, version string, scope types.Scope) types.Artifact {
	t.Helper()
	a := types.Artifact{GroupID: group, ArtifactID: id, Version: version, Type: "jar", Scope: scope}
	a.File = "/repo/" + a.DefaultFileName()
	testutil.WriteFile(t, fs, a.File, "jar:"+a.ID())
	return a
}

func warArtifact(t *testing.T, fs types.FS, id string, files map[string]string) types.Artifact {
	t.Helper()
	a := types.Artifact{GroupID: "org.skins", ArtifactID: id, Version: "1.0", Type: "war"}
	a.File = "/repo/" + a.DefaultFileName()
	entries := make([]archive.Entry, 0, len(files))
	for name, content := range files {
		entries = append(entries, archive.Entry{Name: name, Data: []byte(content), ModTime: testutil.At(1)})
	}
	require.NoError(t, archive.NewZipCodec().Pack(fs, a.File, entries))
	return a
}

func TestRunCreatesSkeletonAndPlaceholderDescriptor(t *testing.T) {
	fs := testutil.NewTestFS()

	report, err := New(fs).Run(baseOptions())
	require.NoError(t, err)
	assert.True(t, report.Succeeded())
	assert.Equal(t, StateDone, report.State)
	assert.Len(t, report.Steps, 8)

	layout := Layout{Root: outputDir}
	assert.True(t, testutil.Exists(fs, layout.MetaInf()))
	assert.True(t, testutil.Exists(fs, layout.WebInf()))
	assert.True(t, report.DescriptorCreated)
	assert.Equal(t, "", testutil.ReadFile(t, fs, layout.Descriptor()))
}

func TestRunRequiresOutputDir(t *testing.T) {
	_, err := New(testutil.NewTestFS()).Run(Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRunJarAndWarScenario(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, sourceDir, map[string]string{
		"index.jsp":      "project index",
		"css/site.css":   "project css",
		"WEB-INF/.svn/x": "svn",
	})
	opts := baseOptions()
	opts.Artifacts = []types.Artifact{
		jarArtifact(t, fs, "org.lib", "core", "2.0", types.ScopeCompile),
		warArtifact(t, fs, "skin", map[string]string{
			"index.jsp":     "skin index",
			"css/skin.css":  "skin css",
			"images/a.png":  "png",
			"css/site.css":  "skin site css",
			"skin/readme":   "readme",
			"META-INF/x.MF": "manifest",
		}),
	}

	report, err := New(fs).Run(opts)
	require.NoError(t, err)

	assert.Equal(t, "jar:org.lib:core:jar:2.0", testutil.ReadFile(t, fs, outputDir+"/WEB-INF/lib/core-2.0.jar"))
	assert.Equal(t, "project index", testutil.ReadFile(t, fs, outputDir+"/index.jsp"))
	assert.Equal(t, "project css", testutil.ReadFile(t, fs, outputDir+"/css/site.css"))
	assert.Equal(t, "skin css", testutil.ReadFile(t, fs, outputDir+"/css/skin.css"))
	assert.Equal(t, "png", testutil.ReadFile(t, fs, outputDir+"/images/a.png"))
	assert.False(t, testutil.Exists(fs, outputDir+"/WEB-INF/.svn"))

	require.Len(t, report.Overlays, 1)
	assert.Equal(t, 2, report.Overlays[0].Shadowed)
	assert.Len(t, report.Placed(), 1)
	assert.True(t, testutil.Exists(fs, workDir+"/skin-1.0/css/skin.css"))
}

func TestSecondRunWritesNothing(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, sourceDir, map[string]string{
		"index.jsp":            "project index",
		"WEB-INF/jsp/view.jsp": "view",
	})
	testutil.WriteTree(t, fs, classesDir, map[string]string{
		"com/example/App.class": "bytecode",
		"app.properties":        "x=1",
	})
	testutil.WriteTree(t, fs, "/project/src/main/filtered", map[string]string{
		"config/app.properties": testutil.Lines("version=${project.version}", "name=@app.name@"),
	})
	testutil.WriteFile(t, fs, "/project/filters.properties", "app.name=Shop\n")

	opts := baseOptions()
	opts.Filters = []string{"/project/filters.properties"}
	opts.Resources = []types.ResourceSet{
		{Directory: "/project/src/main/filtered", TargetPath: "WEB-INF", Filtering: true},
	}
	opts.Artifacts = []types.Artifact{
		jarArtifact(t, fs, "org.lib", "core", "2.0", types.ScopeRuntime),
		warArtifact(t, fs, "skin", map[string]string{"css/skin.css": "skin"}),
	}

	first, err := New(fs).Run(opts)
	require.NoError(t, err)
	assert.True(t, first.BytesWritten())
	assert.Equal(t, testutil.Lines("version=1.0", "name=Shop"),
		testutil.ReadFile(t, fs, outputDir+"/WEB-INF/config/app.properties"))
	before := testutil.Snapshot(t, fs, outputDir)

	second, err := New(fs).Run(opts)
	require.NoError(t, err)
	assert.False(t, second.BytesWritten(), "copy stats %+v", second.Copy)
	assert.Zero(t, second.Copy.Copied)
	assert.Zero(t, second.Copy.Filtered)
	assert.Equal(t, before, testutil.Snapshot(t, fs, outputDir))
}

func TestConfiguredDescriptor(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, sourceDir, map[string]string{
		"WEB-INF/web.xml":      "source descriptor",
		"META-INF/context.xml": "source context",
	})
	testutil.WriteFile(t, fs, "/project/conf/shop-web.xml", "<web-app><display-name>shop</display-name></web-app>")
	testutil.WriteFile(t, fs, "/project/conf/context.xml", "<Context/>")

	opts := baseOptions()
	opts.WebXML = "/project/conf/shop-web.xml"
	opts.ContainerConfig = "/project/conf/context.xml"

	report, err := New(fs).Run(opts)
	require.NoError(t, err)
	assert.False(t, report.DescriptorCreated)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, "<web-app><display-name>shop</display-name></web-app>",
		testutil.ReadFile(t, fs, outputDir+"/WEB-INF/web.xml"))
	assert.Equal(t, "<Context/>", testutil.ReadFile(t, fs, outputDir+"/META-INF/context.xml"))
}

func TestConfiguredDescriptorMustExist(t *testing.T) {
	fs := testutil.NewTestFS()
	opts := baseOptions()
	opts.WebXML = "/project/conf/missing.xml"

	report, err := New(fs).Run(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
	assert.Equal(t, "place-web-descriptor", errors.GetErrorDetails(err)["state"])
	assert.Equal(t, StatePlaceWebDescriptor, report.State)
	assert.False(t, report.Succeeded())
	assert.False(t, testutil.Exists(fs, outputDir+"/WEB-INF/web.xml"))
}

func TestMalformedDescriptorIsCopiedWithWarning(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteFile(t, fs, "/project/conf/web.xml", "<web-app version=3.0></web-app>")
	opts := baseOptions()
	opts.WebXML = "/project/conf/web.xml"

	report, err := New(fs).Run(opts)
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "not well-formed")
	assert.Equal(t, "<web-app version=3.0></web-app>", testutil.ReadFile(t, fs, outputDir+"/WEB-INF/web.xml"))
}

func TestExistingSourceDescriptorIsKept(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, sourceDir, map[string]string{"WEB-INF/web.xml": "<web-app/>"})

	report, err := New(fs).Run(baseOptions())
	require.NoError(t, err)
	assert.False(t, report.DescriptorCreated)
	assert.Equal(t, "<web-app/>", testutil.ReadFile(t, fs, outputDir+"/WEB-INF/web.xml"))
}

func TestClassesAreCopied(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, classesDir, map[string]string{
		"com/example/App.class": "bytecode",
		"log4j.properties":      "log",
	})

	_, err := New(fs).Run(baseOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"com/example/App.class", "log4j.properties"},
		testutil.ListFiles(t, fs, outputDir+"/WEB-INF/classes"))
}

func TestClassesAreArchived(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, classesDir, map[string]string{
		"com/example/App.class": "bytecode",
		"log4j.properties":      "log",
	})
	opts := baseOptions()
	opts.ArchiveClasses = true

	report, err := New(fs).Run(opts)
	require.NoError(t, err)
	jar := outputDir + "/WEB-INF/lib/shop-1.0.jar"
	assert.Equal(t, jar, report.ClassesArchive)
	assert.True(t, report.ClassesArchived)
	assert.False(t, testutil.Exists(fs, outputDir+"/WEB-INF/classes"))

	_, err = archive.NewZipCodec().Unpack(fs, jar, "/check", archive.UnpackOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"META-INF/MANIFEST.MF", "com/example/App.class", "log4j.properties"},
		testutil.ListFiles(t, fs, "/check"))
	assert.Contains(t, testutil.ReadFile(t, fs, "/check/META-INF/MANIFEST.MF"), "Implementation-Title: shop\r\n")

	again, err := New(fs).Run(opts)
	require.NoError(t, err)
	assert.False(t, again.ClassesArchived, "unchanged classes keep the existing jar")
}

func TestClassesInsideOutputAreLeftAlone(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteFile(t, fs, outputDir+"/WEB-INF/classes/App.class", "bytecode")
	opts := baseOptions()
	opts.ClassesDir = outputDir + "/WEB-INF/classes"

	report, err := New(fs).Run(opts)
	require.NoError(t, err)
	assert.Zero(t, report.Copy.Copied)
}

func TestResourceSetGuards(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteFile(t, fs, "/project/extra/robots.txt", "robots")
	opts := baseOptions()
	opts.Resources = []types.ResourceSet{
		{Directory: outputDir},
		{Directory: "/project/missing"},
		{Directory: "/project/extra", TargetPath: "static/"},
	}

	report, err := New(fs).Run(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ResourceSets)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "/project/missing")
	assert.Equal(t, "robots", testutil.ReadFile(t, fs, outputDir+"/static/robots.txt"))
}

func TestResourceTargetPathCannotEscape(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteFile(t, fs, "/project/extra/robots.txt", "robots")
	opts := baseOptions()
	opts.Resources = []types.ResourceSet{{Directory: "/project/extra", TargetPath: "../elsewhere"}}

	report, err := New(fs).Run(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, StatePlaceDeclaredResources, report.State)
}

func TestRuntimeInvisibleArtifactsAreAbsent(t *testing.T) {
	fs := testutil.NewTestFS()
	opts := baseOptions()
	opts.Artifacts = []types.Artifact{
		jarArtifact(t, fs, "junit", "junit", "4.13", types.ScopeTest),
		jarArtifact(t, fs, "javax.servlet", "servlet-api", "2.5", types.ScopeProvided),
		jarArtifact(t, fs, "org.lib", "core", "2.0", types.ScopeCompile),
	}

	report, err := New(fs).Run(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"core-2.0.jar"}, testutil.ListFiles(t, fs, outputDir+"/WEB-INF/lib"))
	assert.Len(t, report.Skipped(), 2)
}

func TestMissingArtifactFileAbortsPlacement(t *testing.T) {
	fs := testutil.NewTestFS()
	opts := baseOptions()
	opts.Artifacts = []types.Artifact{
		{GroupID: "org.lib", ArtifactID: "ghost", Version: "1", Type: "jar", File: "/repo/ghost-1.jar"},
	}

	report, err := New(fs).Run(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrResolutionGap))
	assert.Equal(t, StateClassifyAndPlaceDependencies, report.State)
}

func TestUnknownOverlayArchiveIsSkipped(t *testing.T) {
	fs := testutil.NewTestFS()
	odd := types.Artifact{GroupID: "org.skins", ArtifactID: "odd", Version: "1", Type: "war", File: "/repo/odd-1.rpm"}
	testutil.WriteFile(t, fs, odd.File, "rpm")
	opts := baseOptions()
	opts.Artifacts = []types.Artifact{odd}

	report, err := New(fs).Run(opts)
	require.NoError(t, err)
	assert.Empty(t, report.Overlays)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "unknown archive type")
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "initialize", StateInitialize.String())
	assert.Equal(t, "overlay-nested-wars", StateOverlayNestedWars.String())
	assert.Equal(t, "unknown", State(99).String())
}
