// Package s3 uploads generated workbooks to AWS S3.
//
// Uses the default AWS SDK credentials, e.g. via the environment
// AWS_REGION=region AWS_ACCESS_KEY_ID=key AWS_SECRET_ACCESS_KEY=secret
// or a profile in ~/.aws/credentials.
package s3

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	log "github.com/sirupsen/logrus"

	"github.com/aerissecure/xlsxgen"
)

// Manager uploads workbooks to S3.
type Manager struct {
	uploader s3manageriface.UploaderAPI
}

// NewManager creates a Manager for region using the named credentials
// profile, "default" when empty.
func NewManager(region, profile string) (*Manager, error) {
	if profile == "" {
		profile = "default"
	}
	log.Debugf("Using region: %q, profile: %q", region, profile)

	sess, err := session.NewSessionWithOptions(session.Options{
		Profile:           profile,
		Config:            aws.Config{Region: aws.String(region)},
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}
	return NewManagerWithUploader(s3manager.NewUploader(sess)), nil
}

// NewManagerWithUploader wraps an existing uploader.
func NewManagerWithUploader(u s3manageriface.UploaderAPI) *Manager {
	return &Manager{uploader: u}
}

// Upload stores body under bucket/key and returns its location.
func (m *Manager) Upload(ctx context.Context, body []byte, bucket, key string) (string, error) {
	result, err := m.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(xlsxgen.MimeType),
	})
	if err != nil {
		return "", err
	}
	log.Debugf("Uploaded %d bytes to %q", len(body), result.Location)
	return result.Location, nil
}

// UploadFile uploads a workbook from disk. An empty key uses the file name.
func (m *Manager) UploadFile(ctx context.Context, fileName, bucket, key string) (string, error) {
	body, err := os.ReadFile(fileName)
	if err != nil {
		return "", err
	}
	if key == "" {
		key = filepath.Base(fileName)
	}
	return m.Upload(ctx, body, bucket, key)
}
