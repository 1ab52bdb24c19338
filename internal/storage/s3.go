package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	graphPagePrefix  = "graphs"
	graphPageType    = "text/html; charset=utf-8"
	downloadLinkLife = 15 * time.Minute
)

// S3Params configures the S3 compatible object store used for rendered
// graph pages.
type S3Params struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

func NewS3Client(ctx context.Context, params S3Params) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(params.Region),
		config.WithBaseEndpoint(params.Endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			params.AccessKey,
			params.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return client, nil
}

// ArtifactStore persists rendered graph pages and hands out presigned
// download links for them.
type ArtifactStore struct {
	client         *s3.Client
	bucket         string
	publicEndpoint *url.URL
}

// NewArtifactStore returns an ArtifactStore writing to bucket. Download
// links are signed for publicEndpoint, an absolute URL which may carry a
// path prefix when the store sits behind a reverse proxy.
func NewArtifactStore(client *s3.Client, bucket string, publicEndpoint string) (*ArtifactStore, error) {
	if client == nil {
		return nil, errors.New("artifact store requires an s3 client")
	}
	if bucket == "" {
		return nil, errors.New("artifact store requires a bucket")
	}
	publicURL, err := url.Parse(publicEndpoint)
	if err != nil || publicURL.Scheme == "" || publicURL.Host == "" {
		return nil, fmt.Errorf("invalid public endpoint: %q", publicEndpoint)
	}
	return &ArtifactStore{
		client:         client,
		bucket:         bucket,
		publicEndpoint: publicURL,
	}, nil
}

// PutGraphPage uploads an HTML page under a fresh key and returns the key.
func (a *ArtifactStore) PutGraphPage(ctx context.Context, page string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate page key: %w", err)
	}
	key := fmt.Sprintf("%s/%s.html", graphPagePrefix, id)

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(page),
		ContentType: aws.String(graphPageType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload graph page to S3: %w", err)
	}

	return key, nil
}

// GenerateDownloadLink presigns a GET for key against the public endpoint.
func (a *ArtifactStore) GenerateDownloadLink(ctx context.Context, key string) (string, error) {
	publicURL := a.publicEndpoint
	prefix := strings.TrimSuffix(publicURL.Path, "/")

	// Build the base endpoint (scheme + host only, no path)
	publicBaseEndpoint := fmt.Sprintf("%s://%s", publicURL.Scheme, publicURL.Host)

	// Presign against the public host so the signature matches the Host
	// header the browser will send.
	base := a.client.Options()
	presignClientS3 := s3.NewFromConfig(
		aws.Config{
			Region:      base.Region,
			Credentials: base.Credentials,
			HTTPClient:  base.HTTPClient,
		},
		func(o *s3.Options) {
			o.BaseEndpoint = aws.String(publicBaseEndpoint)
			o.UsePathStyle = true
		},
	)

	presigner := s3.NewPresignClient(presignClientS3)

	out, err := presigner.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(a.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(downloadLinkLife),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate download link: %w", err)
	}

	if prefix != "" {
		signedURL, parseErr := url.Parse(out.URL)
		if parseErr != nil {
			return "", fmt.Errorf("failed to parse presigned url: %w", parseErr)
		}
		signedURL.Path = prefix + signedURL.Path
		return signedURL.String(), nil
	}

	return out.URL, nil
}

// PublishGraphPage uploads page and returns a download link for it.
func (a *ArtifactStore) PublishGraphPage(ctx context.Context, page string) (string, error) {
	key, err := a.PutGraphPage(ctx, page)
	if err != nil {
		return "", err
	}
	return a.GenerateDownloadLink(ctx, key)
}
