package workarea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/testutil"
)

func TestFreshness(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteFileAt(t, fs, "/repo/skin-1.0.war", "zip", testutil.At(10))
	w := New(fs, "/target/war/work")

	fresh, err := w.IsFresh("skin-1.0", "/repo/skin-1.0.war")
	require.NoError(t, err)
	assert.False(t, fresh, "missing entry")

	dir, err := w.Prepare("skin-1.0")
	require.NoError(t, err)
	assert.Equal(t, "/target/war/work/skin-1.0", dir)

	require.NoError(t, w.MarkFresh("skin-1.0", testutil.At(5)))
	fresh, err = w.IsFresh("skin-1.0", "/repo/skin-1.0.war")
	require.NoError(t, err)
	assert.False(t, fresh, "entry older than archive")

	require.NoError(t, w.MarkFresh("skin-1.0", testutil.At(10)))
	fresh, err = w.IsFresh("skin-1.0", "/repo/skin-1.0.war")
	require.NoError(t, err)
	assert.True(t, fresh, "entry as new as archive")
}

func TestIsFreshMissingSource(t *testing.T) {
	w := New(testutil.NewTestFS(), "/work")

	_, err := w.IsFresh("x", "/repo/x.war")
	assert.True(t, errors.IsErrorCode(err, errors.ErrIOFailure))
}

func TestClean(t *testing.T) {
	fs := testutil.NewTestFS()
	w := New(fs, "/work")
	testutil.WriteFile(t, fs, "/work/a/index.html", "a")
	testutil.WriteFile(t, fs, "/work/b/index.html", "b")

	require.NoError(t, w.Clean())
	assert.False(t, testutil.Exists(fs, "/work"))
}
