package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// OSS 把生成的视频转存到 MinIO，返回预签名 URL
type OSS struct {
	client *minio.Client
	bucket string
	expiry time.Duration
	http   *http.Client
	logger zerolog.Logger
}

func NewOSS(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*OSS, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("MinIO 初始化失败: %w", err)
	}
	return &OSS{
		client: client,
		bucket: bucket,
		expiry: 72 * time.Hour,
		http:   &http.Client{Timeout: 10 * time.Minute},
		logger: log.With().Str("component", "oss").Logger(),
	}, nil
}

func (o *OSS) ensureBucket(ctx context.Context) error {
	exists, err := o.client.BucketExists(ctx, o.bucket)
	if err != nil {
		return fmt.Errorf("检查 Bucket 失败: %w", err)
	}
	if exists {
		return nil
	}
	if err := o.client.MakeBucket(ctx, o.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("创建 Bucket 失败: %w", err)
	}
	o.logger.Info().Str("bucket", o.bucket).Msg("bucket created")
	return nil
}

// Mirror 下载 srcURL 并上传到 objectName
func (o *OSS) Mirror(ctx context.Context, srcURL, objectName string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", fmt.Errorf("create download request failed: %w", err)
	}
	resp, err := o.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s failed: %w", srcURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: status %d", srcURL, resp.StatusCode)
	}
	return o.Upload(ctx, resp.Body, objectName, resp.ContentLength)
}

// Upload 通用上传，size 为 -1 表示未知大小
func (o *OSS) Upload(ctx context.Context, reader io.Reader, objectName string, size int64) (string, error) {
	if err := o.ensureBucket(ctx); err != nil {
		return "", err
	}

	_, err := o.client.PutObject(ctx, o.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentTypeOf(objectName),
	})
	if err != nil {
		return "", fmt.Errorf("上传到 MinIO 失败: %w", err)
	}

	presignedURL, err := o.client.PresignedGetObject(ctx, o.bucket, objectName, o.expiry, make(url.Values))
	if err != nil {
		return "", fmt.Errorf("生成签名 URL 失败: %w", err)
	}

	o.logger.Info().Str("object", objectName).Msg("file uploaded")
	return presignedURL.String(), nil
}

func contentTypeOf(objectName string) string {
	switch filepath.Ext(objectName) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	}
	return "application/octet-stream"
}
