package aws

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"
	"travelhub/src/config"
	"travelhub/src/lib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PhotoKey places an uploaded listing photo under its owner's prefix.
func PhotoKey(prefix string, ownerId uint, filename string) string {
	ext := path.Ext(filename)
	if ext == "" {
		ext = ".jpeg"
	}
	return fmt.Sprintf("%s/%d/%s%s", prefix, ownerId, uuid.NewString(), ext)
}

// S3UploadAsset stores the object and returns its bucket URL.
func S3UploadAsset(ctx context.Context, name string, body io.Reader, contentType string) (*string, error) {
	assetsBucket := config.Get().AssetsBucket
	if assetsBucket == "" {
		return nil, lib.ErrNotConfigured
	}
	client := lib.AWSGetS3Client()
	if client == nil {
		return nil, lib.ErrNotConfigured
	}
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(assetsBucket),
		Key:         aws.String(name),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Could not put object to S3 bucket: %s\n", err.Error())
		return nil, err
	}
	err = s3.NewObjectExistsWaiter(client).Wait(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(assetsBucket),
		Key:    aws.String(name),
	}, time.Minute)
	if err != nil {
		log.Printf("Failed attempt to wait for object %s to exist: %s\n", name, err.Error())
		return nil, err
	}
	log.Printf("Added object '%s' to bucket '%s'", name, assetsBucket)
	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", assetsBucket, name)
	return &url, nil
}
