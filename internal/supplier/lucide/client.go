// Package lucide fetches icon data from a Lucide distribution over HTTP.
package lucide

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"icon-registry/internal/common/config"
	apperrors "icon-registry/internal/common/errors"
	apphttp "icon-registry/internal/common/http"
	"icon-registry/internal/common/logger"
	"icon-registry/internal/common/metrics"
	"icon-registry/internal/icons/catalogue"
)

const (
	maxIndexBytes = 32 << 20
	maxIconBytes  = 1 << 20

	kindIndex = "index"
	kindIcon  = "icon"
)

// Client reads the catalogue index and single icons from the upstream.
type Client struct {
	http        *apphttp.Client
	indexURL    string
	iconBaseURL string
	logger      logger.Logger
	group       singleflight.Group
}

func NewClient(cfg config.CatalogueConfig, log logger.Logger) *Client {
	return &Client{
		http:        apphttp.NewClient(config.GetDuration(cfg.Timeout), cfg.UserAgent),
		indexURL:    cfg.IndexURL,
		iconBaseURL: strings.TrimRight(cfg.IconBaseURL, "/"),
		logger:      logger.OrNoOp(log).WithFields(map[string]interface{}{"supplier": "lucide"}),
	}
}

// FetchCatalogue downloads and parses the full index. Any failure is a
// SupplierUnavailable error; callers fall back to another supplier.
func (c *Client) FetchCatalogue(ctx context.Context) (catalogue.Catalogue, error) {
	body, err := c.get(ctx, kindIndex, c.indexURL, maxIndexBytes)
	if err != nil {
		return nil, apperrors.NewSupplierUnavailableError(c.indexURL, err)
	}

	cat, skipped, err := ParseIndex(body)
	if err != nil {
		return nil, apperrors.NewSupplierUnavailableError(c.indexURL, err)
	}

	c.logger.Info("catalogue fetched", map[string]interface{}{
		"icons":   len(cat),
		"skipped": len(skipped),
	})
	if len(skipped) > 0 {
		c.logger.Debug("index entries skipped", map[string]interface{}{
			"names": skipped,
		})
	}
	return cat, nil
}

// Lookup fetches one icon document by exact name. Concurrent lookups for the
// same name share a single request.
func (c *Client) Lookup(ctx context.Context, name string) (string, bool) {
	if !safeName(name) || c.iconBaseURL == "" {
		return "", false
	}

	v, err, _ := c.group.Do(name, func() (interface{}, error) {
		target := c.iconBaseURL + "/" + url.PathEscape(name) + ".svg"
		body, err := c.get(ctx, kindIcon, target, maxIconBytes)
		if err != nil {
			return nil, err
		}
		return string(body), nil
	})
	if err != nil {
		fields := map[string]interface{}{
			"name":      name,
			"errorCode": apperrors.ErrCodeSupplierUnavailable,
			"error":     err.Error(),
		}
		if isNotFound(err) {
			c.logger.Debug("icon not found upstream", fields)
		} else {
			c.logger.Warn("icon lookup failed", fields)
		}
		return "", false
	}
	return v.(string), true
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, kind, target string, limit int64) ([]byte, error) {
	start := time.Now()
	outcome := "error"
	defer func() {
		metrics.UpstreamRequestsTotal.WithLabelValues(kind, outcome).Inc()
		metrics.UpstreamRequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()

	resp, err := c.http.Get(ctx, target)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			outcome = "not_found"
		}
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("response exceeds %d bytes", limit)
	}

	outcome = "ok"
	return body, nil
}

// safeName rejects names that would escape the icon directory.
func safeName(name string) bool {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\?#")
}
