package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"
	"hotelbook/shared/constant"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"
)

var ErrForeignURL = errors.New("url does not belong to the configured bucket")

// S3 stores room images on an S3 compatible media host and hands back their public URLs.
type S3 interface {
	UploadFile(ctx context.Context, directory string, fileHeader *multipart.FileHeader) (url string, err error)
	DeleteFile(ctx context.Context, url string) error
}

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type s3Impl struct {
	client       objectAPI
	bucket       string
	publicDomain string
	otel         otel.Otel
}

func (svc *s3Impl) UploadFile(ctx context.Context, directory string, fileHeader *multipart.FileHeader) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	file, err := fileHeader.Open()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	buf := bytes.NewBuffer(nil)
	if _, err = buf.ReadFrom(file); err != nil {
		return constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	fileName := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectKey,
		otelAttrBucket:   svc.bucket,
	})

	reader := bytes.NewReader(buf.Bytes())

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(objectKey),
		Body:          reader,
		ContentType:   aws.String(fileHeader.Header.Get(constant.RequestHeaderContentType)),
		ContentLength: aws.Int64(reader.Size()),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicDomain + "/" + objectKey, nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, url string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	objectKey := svc.objectKey(url)
	if objectKey == constant.Empty {
		return fmt.Errorf("%w: %s", ErrForeignURL, url)
	}

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectKey,
		otelAttrBucket:   svc.bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (svc *s3Impl) objectKey(url string) string {
	prefix := svc.publicDomain + "/"
	if svc.publicDomain == constant.Empty || !strings.HasPrefix(url, prefix) {
		return constant.Empty
	}

	return strings.TrimPrefix(url, prefix)
}

func New(config *config.Config, otel otel.Otel) S3 {
	s3Config := config.External.S3

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s3Config.AccessKeyID,
			s3Config.SecretAccessKey,
			"",
		)),
		awsConfig.WithRegion(s3Config.Region),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Config.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(s3Config.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return newS3(client, s3Config.BucketName, s3Config.PublicDomain, otel)
}

func newS3(client objectAPI, bucket, publicDomain string, otel otel.Otel) *s3Impl {
	return &s3Impl{
		client:       client,
		bucket:       bucket,
		publicDomain: strings.TrimSuffix(publicDomain, "/"),
		otel:         otel,
	}
}
