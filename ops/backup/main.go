package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"
)

// Uploads a snapshot of the lastclickd datadir to S3. AWS credentials are
// taken from the default provider chain.
func main() {
	datadir := os.Getenv("LASTCLICK_DATADIR")
	bucket := os.Getenv("LASTCLICK_BACKUP_BUCKET")
	region := os.Getenv("AWS_REGION")

	if datadir == "" || bucket == "" || region == "" {
		log.Fatal(
			"missing required env vars LASTCLICK_DATADIR, LASTCLICK_BACKUP_BUCKET, AWS_REGION",
		)
	}

	ctx := context.Background()
	name := backupName(time.Now())

	out, err := os.CreateTemp("", "lastclickd-backup-*.tar.gz")
	if err != nil {
		log.WithError(err).Fatal("failed to create archive file")
	}
	defer os.Remove(out.Name())
	defer out.Close()

	if err := archiveDatadir(ctx, datadir, out); err != nil {
		log.WithError(err).Fatal("failed to archive datadir")
	}
	if _, err := out.Seek(0, 0); err != nil {
		log.WithError(err).Fatal("failed to rewind archive")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		log.WithError(err).Fatal("unable to load aws config")
	}
	client := s3.NewFromConfig(cfg)

	if err := ensureBucket(ctx, client, bucket, region); err != nil {
		log.WithError(err).Fatal("failed to prepare bucket")
	}
	if err := upload(ctx, client, bucket, name, out); err != nil {
		log.WithError(err).Fatal("failed to upload backup")
	}

	log.Infof("uploaded backup to s3://%s/%s", bucket, name)
}
