package oss

import (
	"bytes"
	"fmt"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"

	"github.com/qs3c/salon_go_server/config"
)

type Client struct {
	bucket *oss.Bucket
}

func NewClient(cfg *config.OSSConfig) (*Client, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &Client{bucket: bucket}, nil
}

// ReportKey builds a unique object key for a company's report export.
func ReportKey(companyID int64, at time.Time) string {
	return fmt.Sprintf("reports/%d/%s/%s.csv", companyID, at.UTC().Format("2006-01"), uuid.NewString())
}

// UploadReport stores a CSV export and returns its object key.
func (c *Client) UploadReport(companyID int64, data []byte) (string, error) {
	objectKey := ReportKey(companyID, time.Now())

	err := c.bucket.PutObject(objectKey, bytes.NewReader(data),
		oss.ContentType("text/csv; charset=utf-8"),
		oss.ContentDisposition("attachment"))
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	return objectKey, nil
}

// Delete removes an uploaded report.
func (c *Client) Delete(objectKey string) error {
	if err := c.bucket.DeleteObject(objectKey); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// GetSignedURL returns a temporary download link, valid for expireSeconds
// (one hour when not positive).
func (c *Client) GetSignedURL(objectKey string, expireSeconds int64) (string, error) {
	if expireSeconds <= 0 {
		expireSeconds = 3600
	}

	signedURL, err := c.bucket.SignURL(objectKey, oss.HTTPGet, expireSeconds)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return signedURL, nil
}
