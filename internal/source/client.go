// Package source fetches the boundary topology and the earthquake feed.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"quakemap/internal/geom"
	"quakemap/internal/observability"
	"quakemap/internal/quake"
)

const (
	ResourceBoundaries  = "boundaries"
	ResourceEarthquakes = "earthquakes"
)

// Client loads resources from http(s) URLs or local files. It never retries.
type Client struct {
	httpClient *http.Client
	logger     *log.Logger
	metrics    *observability.Metrics
}

// NewClient creates a client. A zero timeout leaves requests bounded only by
// their context.
func NewClient(timeout time.Duration, logger *log.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metrics,
	}
}

// Boundaries fetches a TopoJSON document and expands the named object into
// country polygons.
func (c *Client) Boundaries(ctx context.Context, location, object string) ([]geom.Polygon, error) {
	start := time.Now()
	defer c.observe(ResourceBoundaries, start)

	body, err := c.fetch(ctx, location)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to fetch boundaries")
	}
	topo, err := geom.ParseTopology(body)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to parse boundaries")
	}
	features, err := topo.Features(object)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to expand boundaries")
	}
	d := geom.FromFeatures(features)

	c.logger.WithFields(log.Fields{
		"location": location,
		"features": len(features),
		"polygons": len(d.Polygons),
		"bbox":     d.BBox,
	}).Debug("Boundaries loaded")

	return d.Polygons, nil
}

// Earthquakes fetches the feed, GeoJSON or CSV by the location's extension.
// Every record is returned, including those without geometry, in feed order.
func (c *Client) Earthquakes(ctx context.Context, location string) ([]quake.Event, error) {
	start := time.Now()
	defer c.observe(ResourceEarthquakes, start)

	body, err := c.fetch(ctx, location)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to fetch earthquakes")
	}
	events, err := decodeFeed(location, body)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to parse earthquakes")
	}

	c.logger.WithFields(log.Fields{
		"location": location,
		"records":  len(events),
	}).Debug("Earthquakes loaded")

	return events, nil
}

func (c *Client) observe(resource string, start time.Time) {
	if c.metrics != nil {
		c.metrics.FetchDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	}
}

func (c *Client) fetch(ctx context.Context, location string) ([]byte, error) {
	if !isRemote(location) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return os.ReadFile(strings.TrimPrefix(location, "file://"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return io.ReadAll(resp.Body)
}

func decodeFeed(location string, body []byte) ([]quake.Event, error) {
	if isCSV(location) {
		return quake.FromCSV(bytes.NewReader(body))
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, err
	}
	return quake.FromFeatureCollection(fc), nil
}

func isCSV(location string) bool {
	p := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.EqualFold(path.Ext(p), ".csv")
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
