// Package matrixstore resolves MATRIX_CONFIG_PATH / SYNONYMS_CONFIG_PATH
// to local bytes, transparently fetching from S3 when the path carries
// an s3:// scheme, adapted from the teacher's storage.S3Client.
package matrixstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the connection details for an s3://-backed store.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Store resolves a configured path to its raw bytes.
type Store struct {
	s3     *s3.Client
	hasS3  bool
}

// New builds a Store. cfg may be the zero value when every path this
// process will ever load is local; if cfg is incomplete no S3 client
// is built, and a later Load of an s3:// path fails that specific call
// rather than the whole process.
func New(cfg S3Config) *Store {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return &Store{}
	}

	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if service == s3.ServiceID {
			return aws.Endpoint{URL: cfg.Endpoint, SigningRegion: cfg.Region, HostnameImmutable: true}, nil
		}
		return aws.Endpoint{}, fmt.Errorf("unknown endpoint requested")
	})

	awsConfig := aws.Config{
		Region:                      cfg.Region,
		Credentials:                 credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		EndpointResolverWithOptions: customResolver,
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &Store{s3: client, hasS3: true}
}

// Load returns the contents at path: a local filesystem read, or an
// S3 GetObject when path has the form s3://bucket/key.
func (s *Store) Load(ctx context.Context, path string) ([]byte, error) {
	bucket, key, ok := parseS3URI(path)
	if !ok {
		return os.ReadFile(path)
	}
	if !s.hasS3 {
		return nil, fmt.Errorf("matrixstore: %s requires S3 credentials, none configured", path)
	}

	out, err := s.s3.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return nil, fmt.Errorf("matrixstore: get %s: %w", path, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("matrixstore: read %s: %w", path, err)
	}
	return data, nil
}

func parseS3URI(path string) (bucket, key string, ok bool) {
	const prefix = "s3://"
	if !strings.HasPrefix(path, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
