package e2e

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
)

// InfluxClient wraps the official InfluxDB v2 client for the end-to-end
// suite. It onboards a fresh instance and lets tests count the points the
// evaluation sinks wrote.
type InfluxClient struct {
	org    string
	bucket string
	client influxdb2.Client
	query  api.QueryAPI
}

// NewInfluxClient creates a client for an already reachable server.
func NewInfluxClient(url, org, bucket, token string) *InfluxClient {
	c := influxdb2.NewClient(url, token)
	return &InfluxClient{org: org, bucket: bucket, client: c, query: c.QueryAPI(org)}
}

// Onboard runs the initial setup of a fresh instance, creating the
// organisation, the bucket and the admin token the sinks will use.
func (c *InfluxClient) Onboard(ctx context.Context, username, password, token string) error {
	_, err := c.client.SetupWithToken(ctx, username, password, c.org, c.bucket, 0, token)
	return err
}

// CountPoints counts the rows of one measurement written within the lookback
// window.
func (c *InfluxClient) CountPoints(ctx context.Context, measurement string, lookback time.Duration) (int, error) {
	flux := fmt.Sprintf(`from(bucket:%q) |> range(start:-%s) |> filter(fn: (r) => r._measurement == %q)`,
		c.bucket, lookback, measurement)
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	n := 0
	for res.Next() {
		n++
	}
	return n, res.Err()
}

// Close releases the underlying client resources.
func (c *InfluxClient) Close() { c.client.Close() }
