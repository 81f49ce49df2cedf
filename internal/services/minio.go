// Package services regroupe les clients des services externes : recherche
// Elasticsearch, stockage d'images MinIO et envoi d'e-mails.
package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageStore dépose les images produit dans un bucket MinIO.
type ImageStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewImageStore(client *minio.Client, bucket string) *ImageStore {
	return &ImageStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(client.EndpointURL().String(), "/") + "/" + bucket + "/",
	}
}

// ErrUnsupportedImage : type MIME refusé à l'upload.
type ErrUnsupportedImage struct{ ContentType string }

func (e ErrUnsupportedImage) Error() string {
	return fmt.Sprintf("type d'image non supporté: %s", e.ContentType)
}

// Upload enregistre l'image sous un nom unique et renvoie son URL publique.
func (s *ImageStore) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", ErrUnsupportedImage{ContentType: contentType}
	}
	if e := strings.ToLower(path.Ext(filename)); e != "" {
		ext = e
	}
	key := "products/" + uuid.NewString() + ext

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload MinIO: %w", err)
	}
	return s.baseURL + key, nil
}

// SignedURL génère une URL signée pour une image du bucket. Les URL
// externes (unsplash, ...) sont renvoyées telles quelles.
func (s *ImageStore) SignedURL(ctx context.Context, objectURL string, ttl time.Duration) (string, error) {
	key, ok := strings.CutPrefix(objectURL, s.baseURL)
	if !ok {
		return objectURL, nil
	}
	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, make(url.Values))
	if err != nil {
		return "", err
	}
	return signed.String(), nil
}
