package archive

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/testutil"
	"github.com/arthur-debert/warforge/pkg/types"
)

func TestRegistryForFile(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		path  string
		codec string
	}{
		{"/repo/app-1.0.war", "zip"},
		{"/repo/lib.JAR", "zip"},
		{"/repo/app.configuration", "zip"},
		{"/repo/site.tar", "tar"},
		{"/repo/site.tar.gz", "tar.gz"},
		{"/repo/site.tgz", "tar.gz"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			codec, err := r.ForFile(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.codec, codec.Name())
		})
	}

	_, err := r.ForFile("/repo/notes.rpm")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownArchiveType))
}

func TestRegistryTrimExtension(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, "skin-1.0", r.TrimExtension("/repo/skin-1.0.war"))
	assert.Equal(t, "site-2", r.TrimExtension("/repo/site-2.tar.gz"))
	assert.Equal(t, "bundle", r.TrimExtension("/repo/bundle.rpm"))
	assert.Contains(t, r.Extensions(), "war")
}

func packSample(t *testing.T, fs types.FS, codec Codec, archive string) {
	t.Helper()
	testutil.WriteFileAt(t, fs, "/src/index.html", "<html/>", testutil.At(1))
	require.NoError(t, codec.Pack(fs, archive, []Entry{
		{Name: "WEB-INF/", Dir: true, ModTime: testutil.At(0)},
		{Name: "WEB-INF/web.xml", Data: []byte("<web-app/>"), ModTime: testutil.At(2)},
		{Name: "index.html", Source: "/src/index.html"},
	}))
}

func TestRoundTrip(t *testing.T) {
	for _, codec := range []Codec{NewZipCodec(), NewTarCodec(false), NewTarCodec(true)} {
		t.Run(codec.Name(), func(t *testing.T) {
			fs := testutil.NewTestFS()
			packSample(t, fs, codec, "/out/sample."+codec.Name())

			result, err := codec.Unpack(fs, "/out/sample."+codec.Name(), "/unpacked", UnpackOptions{})
			require.NoError(t, err)
			assert.Equal(t, 2, result.Files)
			assert.Equal(t, 1, result.Dirs)

			assert.Equal(t, map[string]string{
				"WEB-INF/web.xml": "<web-app/>",
				"index.html":      "<html/>",
			}, testutil.Snapshot(t, fs, "/unpacked"))

			info, err := fs.Stat("/unpacked/WEB-INF/web.xml")
			require.NoError(t, err)
			assert.True(t, info.ModTime().Equal(testutil.At(2)), "entry time kept, got %s", info.ModTime())

			info, err = fs.Stat("/unpacked/index.html")
			require.NoError(t, err)
			assert.True(t, info.ModTime().Equal(testutil.At(1)), "source time kept, got %s", info.ModTime())
		})
	}
}

func TestUnpackOverwritePolicy(t *testing.T) {
	fs := testutil.NewTestFS()
	codec := NewZipCodec()
	packSample(t, fs, codec, "/out/sample.war")

	testutil.WriteFileAt(t, fs, "/unpacked/index.html", "newer local", testutil.At(30))
	testutil.WriteFileAt(t, fs, "/unpacked/WEB-INF/web.xml", "older local", testutil.At(-30))

	result, err := codec.Unpack(fs, "/out/sample.war", "/unpacked", UnpackOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "newer local", testutil.ReadFile(t, fs, "/unpacked/index.html"))
	assert.Equal(t, "<web-app/>", testutil.ReadFile(t, fs, "/unpacked/WEB-INF/web.xml"))

	_, err = codec.Unpack(fs, "/out/sample.war", "/unpacked", UnpackOptions{Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, "<html/>", testutil.ReadFile(t, fs, "/unpacked/index.html"))
}

func TestZipUnpackRejectsEscapingEntries(t *testing.T) {
	fs := testutil.NewTestFS()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("../../evil.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("boom"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, fs.WriteFile("/evil.war", buf.Bytes(), 0644))

	_, err = NewZipCodec().Unpack(fs, "/evil.war", "/work/evil", UnpackOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchive))
	assert.False(t, testutil.Exists(fs, "/evil.txt"))
}

func TestZipUnpackCorruptArchive(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteFile(t, fs, "/broken.war", "not a zip")

	_, err := NewZipCodec().Unpack(fs, "/broken.war", "/work/broken", UnpackOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchive))
}

func TestPackMissingSource(t *testing.T) {
	fs := testutil.NewTestFS()

	err := NewZipCodec().Pack(fs, "/out/x.zip", []Entry{{Name: "a", Source: "/missing"}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIOFailure))
}
