// services/spaces.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/coffeegolfbot/caddie/caddie/golf"
	"github.com/coffeegolfbot/caddie/caddie/logger"
)

// ErrDocumentNotFound reports that no score document exists in the bucket
// yet. Callers synthesize an empty one.
var ErrDocumentNotFound = errors.New("score document not found")

// SpacesService reads and writes the single score document as one JSON
// object in a DigitalOcean Spaces (S3-compatible) bucket.
type SpacesService struct {
	client    *s3.Client
	bucket    string
	region    string
	objectKey string
}

func NewSpacesService(spacesKey, spacesSecret, region, bucket, objectKey string) *SpacesService {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		panic(fmt.Sprintf("Unable to load Spaces config: %v", err))
	}

	return &SpacesService{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		region:    region,
		objectKey: objectKey,
	}
}

// Load fetches and decodes the whole score document. Returns
// ErrDocumentNotFound when the object does not exist.
func (s *SpacesService) Load(ctx context.Context) (*golf.ScoreData, error) {
	start := time.Now()
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &s.objectKey,
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get score document: %w", err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read score document: %w", err)
	}

	var data golf.ScoreData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode score document: %w", err)
	}
	data.Normalize()
	logger.LogStore("load", time.Since(start), nil)
	return &data, nil
}

// Save writes the whole document back, replacing the previous object. There
// is no conditional put: concurrent processes are last-writer-wins.
func (s *SpacesService) Save(ctx context.Context, data *golf.ScoreData) error {
	start := time.Now()
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode score document: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &s.objectKey,
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		logger.LogStore("save", time.Since(start), err)
		return fmt.Errorf("failed to put score document: %w", err)
	}
	logger.LogStore("save", time.Since(start), nil)
	return nil
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}
