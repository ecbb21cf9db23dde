package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/glamflow/salon-scheduler/internal/config"
	"github.com/glamflow/salon-scheduler/internal/httperr"
)

const maxAvatarEdge = 512

// AvatarStore re-encodes uploaded staff photos to webp and puts them in S3.
type AvatarStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewAvatarStore(cfg *config.Config) *AvatarStore {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	})

	return &AvatarStore{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: cfg.S3PublicBaseURL,
	}
}

func (s *AvatarStore) Upload(ctx context.Context, staffID uint, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", httperr.ErrValidation("invalid_image")
	}

	dst := downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("avatars/staff_%d.webp", staffID)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", httperr.ErrUpstream("avatar_upload_failed")
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

// downscale caps the longest edge at maxAvatarEdge, keeping aspect ratio.
func downscale(src image.Image) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxAvatarEdge && h <= maxAvatarEdge {
		return src
	}

	if w > h {
		h = h * maxAvatarEdge / w
		w = maxAvatarEdge
	} else {
		w = w * maxAvatarEdge / h
		h = maxAvatarEdge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
