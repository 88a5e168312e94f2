package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPutter struct {
	mock.Mock
}

func (m *mockPutter) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucket, key, r, size, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func fixedClock() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) }

func TestStore_ClaveConPrefijoYFecha(t *testing.T) {
	putter := &mockPutter{}
	putter.On("PutObject", mock.Anything, "lot-reports", mock.AnythingOfType("string"), mock.Anything, int64(4),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == "application/pdf" }),
	).Return(minio.UploadInfo{}, nil)
	a := newArchive(putter, "lot-reports", "/reportes/", fixedClock)

	key, err := a.Store(context.Background(), "Lotes a vencer.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "reportes/2026-10-19/"), key)
	assert.True(t, strings.HasSuffix(key, "_Lotes_a_vencer.pdf"), key)
	putter.AssertExpectations(t)
}

func TestStore_NoPermiteSalirDelPrefijo(t *testing.T) {
	putter := &mockPutter{}
	putter.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	a := newArchive(putter, "b", "reportes", fixedClock)

	key, err := a.Store(context.Background(), "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "reportes/2026-10-19/"), key)
	assert.NotContains(t, key, "..")
}

func TestStore_Error(t *testing.T) {
	putter := &mockPutter{}
	putter.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))
	a := newArchive(putter, "b", "", fixedClock)

	_, err := a.Store(context.Background(), "r.pdf", []byte("x"))
	assert.ErrorContains(t, err, "access denied")
}

func TestNopArchive(t *testing.T) {
	key, err := NopArchive{}.Store(context.Background(), "r.pdf", []byte("x"))
	assert.NoError(t, err)
	assert.Empty(t, key)
}
