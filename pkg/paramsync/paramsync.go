// Package paramsync backs up the onroad params to S3 and restores them on
// a replacement device.
package paramsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"onroad-options/pkg/params"
)

// ErrNoBackup is returned by Restore when the device has no backup object.
var ErrNoBackup = errors.New("no backup found")

// Document is the JSON stored per device.
type Document struct {
	DeviceID string            `json:"deviceId"`
	SavedAt  time.Time         `json:"savedAt"`
	Params   map[string]string `json:"params"`
}

// Syncer copies params between a store and an S3 bucket.
type Syncer struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// New returns a Syncer writing under s3://bucket/prefix/.
func New(client s3iface.S3API, bucket, prefix string) *Syncer {
	return &Syncer{client: client, bucket: bucket, prefix: prefix}
}

// NewClientFromEnv creates an S3 client from AWS_DEFAULT_REGION,
// AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.
func NewClientFromEnv() (s3iface.S3API, error) {
	region := os.Getenv("AWS_DEFAULT_REGION")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	if region == "" || accessKey == "" || secretKey == "" {
		return nil, errors.New("missing one or more required environment variables: AWS_DEFAULT_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

func (s *Syncer) objectKey(deviceID string) string {
	return path.Join(s.prefix, deviceID+".json")
}

// Backup uploads every registered key that has a value. The device id
// itself is not part of the payload.
func (s *Syncer) Backup(ctx context.Context, store params.Reader, deviceID string) error {
	if deviceID == "" {
		return errors.New("empty device id")
	}

	doc := Document{
		DeviceID: deviceID,
		SavedAt:  time.Now().UTC(),
		Params:   make(map[string]string),
	}
	for _, key := range params.KnownKeys() {
		if key == params.DongleID {
			continue
		}
		if v := store.Get(key); v != "" {
			doc.Params[key] = v
		}
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	key := s.objectKey(deviceID)
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("paramsync: backed up %d params to s3://%s/%s", len(doc.Params), s.bucket, key)
	return nil
}

// Restore downloads the device's backup and writes each registered key
// to store. It returns the number of keys written.
func (s *Syncer) Restore(ctx context.Context, store params.Store, deviceID string) (int, error) {
	key := s.objectKey(deviceID)
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return 0, ErrNoBackup
		}
		return 0, fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer out.Body.Close()

	var doc Document
	if err := json.NewDecoder(out.Body).Decode(&doc); err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", key, err)
	}

	written := 0
	for k, v := range doc.Params {
		if !params.IsKnown(k) || k == params.DongleID {
			log.Printf("paramsync: skipping %s from backup", k)
			continue
		}
		if err := store.Put(k, v); err != nil {
			return written, err
		}
		written++
	}

	log.Printf("paramsync: restored %d params from s3://%s/%s", written, s.bucket, key)
	return written, nil
}
