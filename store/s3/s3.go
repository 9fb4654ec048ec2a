package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/xxxsen/objdav/store"
)

// s3Store maps the flat store contract onto an S3 compatible bucket
// (AWS, R2, MinIO). Object keys are used as-is under an optional key prefix.
type s3Store struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
}

func (s *s3Store) Name() string {
	return "s3"
}

func (s *s3Store) objectKey(key string) string {
	return s.keyPrefix + key
}

func (s *s3Store) trimKey(key string) string {
	return strings.TrimPrefix(key, s.keyPrefix)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

func (s *s3Store) wrapErr(op, key string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%s key:%s, err:%w", op, key, store.ErrNotFound)
	}
	return fmt.Errorf("%s key:%s failed, err:%w", op, key, err)
}

func (s *s3Store) Head(ctx context.Context, key string) (*store.ObjectInfo, error) {
	rs, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return nil, s.wrapErr("head", key, err)
	}
	return &store.ObjectInfo{
		Key:             key,
		Size:            aws.ToInt64(rs.ContentLength),
		ContentType:     aws.ToString(rs.ContentType),
		ContentLanguage: aws.ToString(rs.ContentLanguage),
		ETag:            aws.ToString(rs.ETag),
		Uploaded:        aws.ToTime(rs.LastModified),
		Metadata:        rs.Metadata,
	}, nil
}

func (s *s3Store) Get(ctx context.Context, key string) (*store.ObjectInfo, io.ReadCloser, error) {
	rs, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return nil, nil, s.wrapErr("get", key, err)
	}
	return &store.ObjectInfo{
		Key:             key,
		Size:            aws.ToInt64(rs.ContentLength),
		ContentType:     aws.ToString(rs.ContentType),
		ContentLanguage: aws.ToString(rs.ContentLanguage),
		ETag:            aws.ToString(rs.ETag),
		Uploaded:        aws.ToTime(rs.LastModified),
		Metadata:        rs.Metadata,
	}, rs.Body, nil
}

func (s *s3Store) Put(ctx context.Context, key string, r io.Reader, size int64, opts *store.PutOptions) (*store.ObjectInfo, error) {
	if opts == nil {
		opts = &store.PutOptions{}
	}
	in := &s3.PutObjectInput{
		Bucket:   aws.String(s.bucket),
		Key:      aws.String(s.objectKey(key)),
		Body:     r,
		Metadata: opts.Metadata,
	}
	if size >= 0 {
		in.ContentLength = aws.Int64(size)
	}
	if len(opts.ContentType) > 0 {
		in.ContentType = aws.String(opts.ContentType)
	}
	if len(opts.ContentLanguage) > 0 {
		in.ContentLanguage = aws.String(opts.ContentLanguage)
	}
	rs, err := s.client.PutObject(ctx, in)
	if err != nil {
		return nil, s.wrapErr("put", key, err)
	}
	return &store.ObjectInfo{
		Key:             key,
		Size:            size,
		ContentType:     opts.ContentType,
		ContentLanguage: opts.ContentLanguage,
		ETag:            aws.ToString(rs.ETag),
		Uploaded:        time.Now().UTC(),
		Metadata:        opts.Metadata,
	}, nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	}); err != nil {
		if isNotFound(err) {
			return nil
		}
		return s.wrapErr("delete", key, err)
	}
	return nil
}

func (s *s3Store) List(ctx context.Context, req *store.ListRequest) (*store.ListResult, error) {
	in := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.objectKey(req.Prefix)),
	}
	if len(req.Delimiter) > 0 {
		in.Delimiter = aws.String(req.Delimiter)
	}
	if len(req.Cursor) > 0 {
		in.ContinuationToken = aws.String(req.Cursor)
	}
	if req.Limit > 0 {
		in.MaxKeys = aws.Int32(int32(req.Limit))
	}
	page, err := s.client.ListObjectsV2(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("list prefix:%s failed, err:%w", req.Prefix, err)
	}
	rs := &store.ListResult{
		Objects:   make([]*store.ObjectInfo, 0, len(page.Contents)),
		Prefixes:  make([]string, 0, len(page.CommonPrefixes)),
		Truncated: aws.ToBool(page.IsTruncated),
		Cursor:    aws.ToString(page.NextContinuationToken),
	}
	for _, obj := range page.Contents {
		rs.Objects = append(rs.Objects, &store.ObjectInfo{
			Key:      s.trimKey(aws.ToString(obj.Key)),
			Size:     aws.ToInt64(obj.Size),
			ETag:     aws.ToString(obj.ETag),
			Uploaded: aws.ToTime(obj.LastModified),
		})
	}
	for _, p := range page.CommonPrefixes {
		rs.Prefixes = append(rs.Prefixes, s.trimKey(aws.ToString(p.Prefix)))
	}
	return rs, nil
}

type config struct {
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	KeyPrefix       string `json:"key_prefix"`
	UsePathStyle    bool   `json:"use_path_style"`
	MaxRetries      int    `json:"max_retries"`
}

func New(ctx context.Context, c *config) (store.IObjectStore, error) {
	if len(c.Bucket) == 0 {
		return nil, fmt.Errorf("s3 store: bucket is required")
	}
	if len(c.Region) == 0 {
		c.Region = "auto"
	}
	maxRetries := c.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
		awsconfig.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = maxRetries
			})
		}),
	}
	if len(c.AccessKeyID) > 0 && len(c.SecretAccessKey) > 0 {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config failed, err:%w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if len(c.Endpoint) > 0 {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = c.UsePathStyle
	})
	return &s3Store{client: client, bucket: c.Bucket, keyPrefix: c.KeyPrefix}, nil
}

func create(args interface{}) (store.IObjectStore, error) {
	c := &config{}
	if err := store.DecodeArgs(args, c); err != nil {
		return nil, err
	}
	return New(context.Background(), c)
}

func init() {
	store.Register("s3", create)
}
