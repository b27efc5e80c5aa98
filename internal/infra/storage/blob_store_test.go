package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newTestStore(t *testing.T) (*blobFileStore, context.Context) {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	store := NewBlobFileStoreFromBucket(bucket, "http://localhost:8080/assets/", slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = store.Close() })

	return store.(*blobFileStore), context.Background()
}

func TestBlobFileStore_SaveReturnsPublicURL(t *testing.T) {
	store, ctx := newTestStore(t)

	url, err := store.Save(ctx, "products/abc/img.png", "image/png", strings.NewReader("fake-png"))

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/assets/products/abc/img.png", url)

	data, err := store.bucket.ReadAll(ctx, "products/abc/img.png")
	require.NoError(t, err)
	assert.Equal(t, "fake-png", string(data))
}

func TestBlobFileStore_Delete(t *testing.T) {
	store, ctx := newTestStore(t)

	_, err := store.Save(ctx, "products/abc/img.png", "image/png", strings.NewReader("fake-png"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "products/abc/img.png"))

	exists, err := store.bucket.Exists(ctx, "products/abc/img.png")
	require.NoError(t, err)
	assert.False(t, exists)
}
