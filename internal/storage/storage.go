package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/config"
)

// PaperStore 封装论文 PDF 的对象存储访问（MinIO / S3 兼容）
type PaperStore struct {
	client *minio.Client
	bucket string
	cfg    *config.Config
}

// NewPaperStore 连接 MinIO 并确保 bucket 存在
func NewPaperStore(cfg *config.Config) (*PaperStore, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("无法创建 minio 客户端: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.MinIO.UploadTimeout)*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.Bucket)
	if err != nil {
		return nil, fmt.Errorf("无法检查 bucket 是否存在: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIO.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("无法创建 bucket: %w", err)
		}
	}

	return &PaperStore{
		client: client,
		bucket: cfg.MinIO.Bucket,
		cfg:    cfg,
	}, nil
}

func (s *PaperStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return err
	}
	return nil
}

// Get 返回对象的全部内容
func (s *PaperStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

// PublicURL 拼出浏览器可以直接访问的对象地址
func (s *PaperStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.MinIO.PublicBaseURL, "/"), s.bucket, key)
}

// KeyFromURL 从 PublicURL 生成的地址中还原出对象的 key
func (s *PaperStore) KeyFromURL(url string) (string, error) {
	prefix := fmt.Sprintf("%s/%s/", strings.TrimRight(s.cfg.MinIO.PublicBaseURL, "/"), s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("地址 %s 不属于当前对象存储", url)
	}
	return strings.TrimPrefix(url, prefix), nil
}
