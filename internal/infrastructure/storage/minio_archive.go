// Package storage archiva los PDF enviados en un almacenamiento S3 compatible.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
	"github.com/jhoicas/lot-expiry-notifications/pkg/config"
)

var (
	_ report.ReportArchive = (*MinIOArchive)(nil)
	_ report.ReportArchive = NopArchive{}
)

// objectPutter lo que MinIOArchive usa de *minio.Client.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinIOArchive guarda cada PDF bajo <prefijo>/<AAAA-MM-DD>/<uuid>_<archivo>.
// Seguro para uso concurrente.
type MinIOArchive struct {
	client objectPutter
	bucket string
	prefix string
	clock  func() time.Time
}

// NewMinIOArchive crea el cliente y asegura que el bucket exista.
func NewMinIOArchive(ctx context.Context, cfg config.StorageConfig) (*MinIOArchive, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return newArchive(cli, cfg.Bucket, cfg.Prefix, time.Now), nil
}

func newArchive(client objectPutter, bucket, prefix string, clock func() time.Time) *MinIOArchive {
	return &MinIOArchive{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/"), clock: clock}
}

// Store sube el contenido y devuelve la clave del objeto.
func (a *MinIOArchive) Store(ctx context.Context, filename string, content []byte) (string, error) {
	key := a.objectKey(filename)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType(filename),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

func (a *MinIOArchive) objectKey(filename string) string {
	name := uuid.New().String() + "_" + strings.ReplaceAll(path.Base("/"+filename), " ", "_")
	return path.Join(a.prefix, a.clock().Format("2006-01-02"), name)
}

func contentType(filename string) string {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return "application/pdf"
	}
	return "application/octet-stream"
}

// NopArchive no guarda nada; se usa cuando no hay almacenamiento configurado.
type NopArchive struct{}

// Store devuelve una clave vacía.
func (NopArchive) Store(context.Context, string, []byte) (string, error) { return "", nil }
