package storage

import (
	"context"
	"cyberhub_backend/internal/config"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Provider stores uploaded assets referenced by exercise content blocks
// (image blocks hold a URL, not the bytes).
type Provider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	GetURL(filename string) string
}

func NewProvider(cfg *config.StorageConfig) (Provider, error) {
	switch cfg.Type {
	case "minio":
		return newMinioProvider(cfg)
	default:
		return &localProvider{cfg: cfg}, nil
	}
}

type localProvider struct {
	cfg *config.StorageConfig
}

func (p *localProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.cfg.LocalPath, filename)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}

	return p.GetURL(filename), nil
}

func (p *localProvider) Delete(ctx context.Context, filename string) error {
	return os.Remove(filepath.Join(p.cfg.LocalPath, filename))
}

func (p *localProvider) GetURL(filename string) string {
	base := p.cfg.PublicBaseURL
	if base == "" {
		base = "/api/uploads"
	}
	return base + "/" + filename
}

type minioProvider struct {
	cfg    *config.StorageConfig
	client *minio.Client
}

func newMinioProvider(cfg *config.StorageConfig) (*minioProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioProvider{cfg: cfg, client: client}, nil
}

func (p *minioProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, p.cfg.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *minioProvider) Delete(ctx context.Context, filename string) error {
	return p.client.RemoveObject(ctx, p.cfg.MinioBucket, filename, minio.RemoveObjectOptions{})
}

func (p *minioProvider) GetURL(filename string) string {
	scheme := "http"
	if p.cfg.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, p.cfg.MinioEndpoint, p.cfg.MinioBucket, filename)
}
