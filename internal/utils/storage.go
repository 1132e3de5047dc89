package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FileStorage abstracts where profile pictures live. SaveFile returns the
// object key (url suffix) to store in the DB; DeleteFile is safe to call for
// missing objects.
type FileStorage interface {
	SaveFile(ctx context.Context, subDir, originalFilename string, reader io.Reader) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

/* ------------------ local disk ------------------ */

// DiskStorage keeps files under BaseDir. Used for local development and as
// the fallback when no R2 credentials are configured.
type DiskStorage struct {
	BaseDir string
}

func NewDiskStorage(baseDir string) *DiskStorage {
	return &DiskStorage{BaseDir: baseDir}
}

func (d *DiskStorage) SaveFile(_ context.Context, subDir, originalFilename string, reader io.Reader) (string, error) {
	dir := filepath.Join(d.BaseDir, subDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}
	name := uniqueName(originalFilename)
	fullPath := filepath.Join(dir, name)
	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", fullPath, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, reader); err != nil {
		return "", fmt.Errorf("write file %s: %w", fullPath, err)
	}
	return filepath.ToSlash(filepath.Join(subDir, name)), nil
}

func (d *DiskStorage) DeleteFile(_ context.Context, key string) error {
	fullPath := filepath.Join(d.BaseDir, filepath.FromSlash(key))
	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file %s: %w", fullPath, err)
	}
	return nil
}

/* ------------------ Cloudflare R2 (S3-compatible) ------------------ */

type R2Storage struct {
	client     *s3.Client
	bucketName string
}

// NewR2Storage builds an S3 client against an R2 endpoint
// ("https://<account-id>.r2.cloudflarestorage.com").
func NewR2Storage(accessKeyID, secretAccessKey, endpoint, bucketName string) *R2Storage {
	cfg := aws.Config{
		Region:       "auto",
		Credentials:  credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		BaseEndpoint: aws.String(endpoint),
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// R2 requires path-style addressing
		o.UsePathStyle = true
	})
	return &R2Storage{client: client, bucketName: bucketName}
}

func (r *R2Storage) SaveFile(ctx context.Context, subDir, originalFilename string, reader io.Reader) (string, error) {
	key := subDir + "/" + uniqueName(originalFilename)
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(r.bucketName),
		Key:    aws.String(key),
		Body:   reader,
	})
	if err != nil {
		return "", fmt.Errorf("upload to R2: %w", err)
	}
	return key, nil
}

func (r *R2Storage) DeleteFile(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete from R2: %w", err)
	}
	return nil
}

func uniqueName(originalFilename string) string {
	return fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(originalFilename))
}
