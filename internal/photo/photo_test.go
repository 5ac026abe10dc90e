package photo

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskSaveAndOpen(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	path, err := d.Save(ctx, strings.NewReader("fake-jpeg-bytes"), "ci-scan.JPG")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".jpg"), "extension is normalized: %s", path)
	assert.NotContains(t, path, "/")

	rc, err := d.Open(ctx, path)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg-bytes", string(data))
}

func TestDiskSaveRejectsUnknownTypes(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	_, err = d.Save(context.Background(), strings.NewReader("x"), "payload.exe")
	require.Error(t, err)
}

func TestDiskRemove(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	path, err := d.Save(ctx, strings.NewReader("x"), "a.png")
	require.NoError(t, err)

	require.NoError(t, d.Remove(ctx, path))
	_, err = d.Open(ctx, path)
	require.Error(t, err)

	// Removing twice or removing the empty path is not an error.
	require.NoError(t, d.Remove(ctx, path))
	require.NoError(t, d.Remove(ctx, ""))
}

func TestDiskRejectsPathTraversal(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	require.Error(t, d.Remove(context.Background(), "../outside.jpg"))
	_, err = d.Open(context.Background(), "a/b.jpg")
	require.Error(t, err)
}
