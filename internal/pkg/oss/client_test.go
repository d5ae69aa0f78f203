package oss

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/salon_go_server/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(&config.OSSConfig{
		Endpoint:        "oss-sa-east-1.aliyuncs.com",
		AccessKeyID:     "test-key",
		AccessKeySecret: "test-secret",
		BucketName:      "salon-reports",
	})
	require.NoError(t, err)
	return c
}

func TestReportKey(t *testing.T) {
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	key := ReportKey(42, at)
	assert.True(t, strings.HasPrefix(key, "reports/42/2026-05/"), key)
	assert.True(t, strings.HasSuffix(key, ".csv"), key)

	assert.NotEqual(t, key, ReportKey(42, at))
}

func TestGetSignedURL(t *testing.T) {
	c := newTestClient(t)

	signed, err := c.GetSignedURL("reports/1/a.csv", 0)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "salon-reports.oss-sa-east-1.aliyuncs.com", u.Host)
	// the key is escaped in the raw URL
	assert.Equal(t, "/reports/1/a.csv", u.Path)
	assert.NotEmpty(t, u.Query().Get("Signature"))
	assert.NotEmpty(t, u.Query().Get("Expires"))
}
