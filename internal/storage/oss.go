package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSS stores files in an Aliyun OSS bucket.
type OSS struct {
	bucket *oss.Bucket
	urlTTL time.Duration
}

func NewOSS(endpoint, accessKey, secretKey, bucketName string, urlTTL time.Duration) (*OSS, error) {
	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("creating oss client: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("opening bucket %s: %w", bucketName, err)
	}

	return &OSS{bucket: bucket, urlTTL: urlTTL}, nil
}

func (s *OSS) Upload(ctx context.Context, path string, r io.Reader) error {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	}

	if err := s.bucket.PutObject(path, r, opts...); err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}

	return nil
}

func (s *OSS) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string

	marker := ""

	for {
		res, err := s.bucket.ListObjects(oss.WithContext(ctx), oss.Prefix(prefix), oss.Marker(marker))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", prefix, err)
		}

		for _, obj := range res.Objects {
			paths = append(paths, obj.Key)
		}

		if !res.IsTruncated {
			return paths, nil
		}

		marker = res.NextMarker
	}
}

func (s *OSS) Delete(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	if _, err := s.bucket.DeleteObjects(paths, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("deleting %d objects: %w", len(paths), err)
	}

	return nil
}

func (s *OSS) SignedURL(ctx context.Context, path string) (string, error) {
	url, err := s.bucket.SignURL(path, oss.HTTPGet, int64(s.urlTTL.Seconds()), oss.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("signing url for %s: %w", path, err)
	}

	return url, nil
}
