package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sourceRoot": "/lib", "items": [{"id": "a", "displayName": "Alpha"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/index.json", Options{})
	assert.True(t, client.Remote())
	doc, err := client.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "Alpha", doc.Items[0].DisplayName)
}

func TestLoadReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewClient(srv.URL, Options{}).Load(context.Background())
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, http.StatusNotFound, loadErr.Status)
}

func TestLoadRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	doc, err := NewClient(srv.URL, Options{Retries: 2}).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Items)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLoadWithoutRetriesFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, Options{Retries: 0}).Load(context.Background())
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, http.StatusServiceUnavailable, loadErr.Status)
}

func TestLoadParseErrorFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, Options{}).Load(context.Background())
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Excerpt, "<html>")
}

func TestLoadLocalFileAndDetail(t *testing.T) {
	root := t.TempDir()
	index := filepath.Join(root, "index.json")
	require.NoError(t, os.WriteFile(index, []byte(`{"sourceRoot": "`+filepath.ToSlash(root)+`", "items": [{"id": "a", "relDir": "props/crate"}]}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "props", "crate"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "props", "crate", "asset_info.json"), []byte(`{"polycount": 1200}`), 0o644))

	client := NewClient("file://"+filepath.ToSlash(index), Options{})
	assert.False(t, client.Remote())
	doc, err := client.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)

	detail, err := client.FetchDetail(context.Background(), doc.Items[0].RelDir)
	require.NoError(t, err)
	assert.Equal(t, float64(1200), detail["polycount"])
}

func TestFetchDetailRejectsParentSegments(t *testing.T) {
	client := NewClient("index.json", Options{DetailRoot: t.TempDir()})
	_, err := client.FetchDetail(context.Background(), "props/../../etc")
	require.Error(t, err)
	_, err = client.FetchDetail(context.Background(), "")
	require.Error(t, err)
}

func TestFetchDetailFromRemoteOrigin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.json":
			_, _ = w.Write([]byte(`{"items": [{"id": "a", "relDir": "props/crate"}]}`))
		case "/props/crate/asset_info.json":
			_, _ = w.Write([]byte(`{"author": "someone"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/index.json", Options{})
	_, err := client.Load(context.Background())
	require.NoError(t, err)
	detail, err := client.FetchDetail(context.Background(), "props/crate")
	require.NoError(t, err)
	assert.Equal(t, "someone", detail["author"])
}

func TestFingerprintLocalChangesWithContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items": []}`), 0o644))
	client := NewClient(path, Options{})

	first, err := client.Fingerprint(context.Background())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(`{"items": [{"id": "a"}]}`), 0o644))
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, future, future))
	second, err := client.Fingerprint(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestFingerprintRemoteUsesETag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"v7"`)
	}))
	defer srv.Close()

	fp, err := NewClient(srv.URL, Options{}).Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `"v7"`, fp)
}

func TestSafeJoin(t *testing.T) {
	root := t.TempDir()
	joined, err := SafeJoin(root, "props/crate")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "props", "crate"), joined)

	_, err = SafeJoin(root, "../outside")
	require.Error(t, err)
	_, err = SafeJoin("", "props")
	require.Error(t, err)
	assert.True(t, HasParentSegment(`a\..\b`))
	assert.False(t, HasParentSegment("a/..b"))
}
