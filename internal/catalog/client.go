package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/atomicstack/assetgrid/internal/logging"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	detailFileName  = "asset_info.json"
	maxDocumentSize = 256 << 20
)

// Options tunes how a Client reaches its source.
type Options struct {
	// Retries is the number of transport-level retries within one load attempt.
	Retries int
	// Timeout bounds a single HTTP round trip. Zero means no limit.
	Timeout time.Duration
	// DetailRoot overrides where per-item asset_info.json files are read from.
	DetailRoot string
}

// Client loads catalog documents and per-item details from a URL or a local
// path.
type Client struct {
	source     string
	detailRoot string
	http       *retryablehttp.Client
	sourceRoot string
}

// retryLogger forwards retryablehttp diagnostics to the shared log.
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...interface{}) {
	logging.Warn("catalog retry error: "+msg, kvFields(keysAndValues))
}

func (retryLogger) Info(string, ...interface{}) {}

func (retryLogger) Debug(string, ...interface{}) {}

func (retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	logging.Warn("catalog retry: "+msg, kvFields(keysAndValues))
}

func kvFields(kv []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}

// NewClient creates a client for source, which may be an http(s) URL, a
// file:// URL or a filesystem path.
func NewClient(source string, opts Options) *Client {
	rc := retryablehttp.NewClient()
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	rc.RetryMax = opts.Retries
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = opts.Timeout
	rc.Logger = retryLogger{}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &Client{
		source:     strings.TrimSpace(source),
		detailRoot: strings.TrimSpace(opts.DetailRoot),
		http:       rc,
	}
}

// Source reports the configured catalog location.
func (c *Client) Source() string {
	return c.source
}

// Remote reports whether the source is fetched over HTTP.
func (c *Client) Remote() bool {
	return isRemote(c.source)
}

// Load fetches and decodes the catalog. The returned document is prepared:
// every item carries a unique identity.
func (c *Client) Load(ctx context.Context) (*Document, error) {
	data, err := c.read(ctx, c.source)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(c.source, data)
	if err != nil {
		return nil, err
	}
	c.sourceRoot = doc.SourceRoot
	return doc, nil
}

// Decode parses a catalog document and prepares its items.
func Decode(source string, data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, newParseError(source, data, err)
	}
	for _, notice := range doc.Prepare() {
		logging.Warn(notice, map[string]interface{}{"source": source})
	}
	return &doc, nil
}

// Detail is the free-form metadata stored next to an asset.
type Detail map[string]interface{}

// FetchDetail reads asset_info.json for the given relative directory.
func (c *Client) FetchDetail(ctx context.Context, relDir string) (Detail, error) {
	location, err := c.detailLocation(relDir)
	if err != nil {
		return nil, err
	}
	data, err := c.read(ctx, location)
	if err != nil {
		return nil, err
	}
	var detail Detail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, newParseError(location, data, err)
	}
	return detail, nil
}

func (c *Client) detailLocation(relDir string) (string, error) {
	rel := NormalizeDir(relDir)
	if rel == "" {
		return "", fmt.Errorf("item has no directory")
	}
	if HasParentSegment(rel) {
		return "", fmt.Errorf("invalid directory %q", relDir)
	}
	root := c.detailRoot
	if root == "" {
		root = c.sourceRoot
	}
	if root == "" && c.Remote() {
		u, err := url.Parse(c.source)
		if err != nil {
			return "", err
		}
		u.Path = "/"
		u.RawQuery = ""
		root = u.String()
	}
	if root == "" {
		return "", fmt.Errorf("no library root configured for details")
	}
	if isRemote(root) {
		u, err := url.Parse(root)
		if err != nil {
			return "", err
		}
		u.Path = path.Join("/", u.Path, rel, detailFileName)
		return u.String(), nil
	}
	return SafeJoin(root, path.Join(rel, detailFileName))
}

// Fingerprint returns a token that changes when the source document changes.
func (c *Client) Fingerprint(ctx context.Context) (string, error) {
	if !c.Remote() {
		info, err := os.Stat(localPath(c.source))
		if err != nil {
			return "", &LoadError{Source: c.source, Err: err}
		}
		return fmt.Sprintf("%d:%d", info.ModTime().UnixNano(), info.Size()), nil
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodHead, c.source, nil)
	if err != nil {
		return "", &LoadError{Source: c.source, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &LoadError{Source: c.source, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &LoadError{Source: c.source, Status: resp.StatusCode}
	}
	if etag := resp.Header.Get("ETag"); etag != "" {
		return etag, nil
	}
	return resp.Header.Get("Last-Modified") + ":" + resp.Header.Get("Content-Length"), nil
}

func (c *Client) read(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, &LoadError{Source: location, Err: errors.New("no catalog source configured")}
	}
	if !isRemote(location) {
		data, err := os.ReadFile(localPath(location))
		if err != nil {
			return nil, &LoadError{Source: location, Err: err}
		}
		return data, nil
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &LoadError{Source: location, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &LoadError{Source: location, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Source: location, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, &LoadError{Source: location, Err: err}
	}
	return data, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func localPath(location string) string {
	if strings.HasPrefix(location, "file://") {
		if u, err := url.Parse(location); err == nil {
			return filepath.FromSlash(u.Path)
		}
		return strings.TrimPrefix(location, "file://")
	}
	return location
}
