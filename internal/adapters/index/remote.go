package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-resty/resty/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultMemoryEntries bounds the in-memory response cache.
const DefaultMemoryEntries = 256

// RemoteConfig configures a remote package index client.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
	Retries int
	// CacheDir holds one JSON document per looked up reference. Empty disables the disk cache.
	CacheDir string
	// RetryWait is the initial backoff between attempts.
	RetryWait time.Duration
}

// Remote queries a package index over HTTP.
// Responses are cached in memory and, when configured, on disk.
type Remote struct {
	client   *resty.Client
	memory   *lru.Cache[domain.Reference, *domain.PackageInfo]
	cacheDir string
}

// NewRemote creates a client for the index at cfg.BaseURL.
func NewRemote(cfg RemoteConfig) (*Remote, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 200 * time.Millisecond
	}

	memory, err := lru.New[domain.Reference, *domain.PackageInfo](DefaultMemoryEntries)
	if err != nil {
		return nil, err
	}

	if cfg.CacheDir != "" {
		if err := os.MkdirAll(cfg.CacheDir, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexCacheCreateFailed.Error()), "path", cfg.CacheDir)
		}
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryWait * 10).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() >= http.StatusInternalServerError || r.StatusCode() == http.StatusTooManyRequests
		})

	return &Remote{client: client, memory: memory, cacheDir: cfg.CacheDir}, nil
}

// Lookup returns the metadata for ref, consulting the caches before the network.
func (r *Remote) Lookup(ctx context.Context, ref domain.Reference) (*domain.PackageInfo, error) {
	if info, ok := r.memory.Get(ref); ok {
		return info, nil
	}

	if info, err := r.readCache(ref); err != nil {
		return nil, err
	} else if info != nil {
		r.memory.Add(ref, info)
		return info, nil
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"name": ref.Name, "version": ref.Version}).
		Get("/v1/packages/{name}/{version}")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexRequestFailed.Error()), "package", ref.String())
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, errNotFound(ref)
	case resp.IsError():
		err := zerr.With(domain.ErrIndexRequestFailed, "package", ref.String())
		return nil, zerr.With(err, "status", resp.StatusCode())
	}

	info, err := decodePackage(resp.Body(), ref)
	if err != nil {
		return nil, err
	}

	if err := r.writeCache(ref, resp.Body()); err != nil {
		return nil, err
	}
	r.memory.Add(ref, info)
	return info, nil
}

func decodePackage(body []byte, ref domain.Reference) (*domain.PackageInfo, error) {
	var dto PackageDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexParseFailed.Error()), "package", ref.String())
	}
	info, err := dto.ToDomain()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexParseFailed.Error()), "package", ref.String())
	}
	if info.Ref != ref {
		err := zerr.With(domain.ErrIndexParseFailed, "package", ref.String())
		return nil, zerr.With(err, "returned", info.Ref.String())
	}
	return info, nil
}

func (r *Remote) cachePath(ref domain.Reference) string {
	return filepath.Join(r.cacheDir, fmt.Sprintf("%016x.json", xxhash.Sum64String(ref.String())))
}

func (r *Remote) readCache(ref domain.Reference) (*domain.PackageInfo, error) {
	if r.cacheDir == "" {
		return nil, nil
	}
	path := r.cachePath(ref)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexCacheReadFailed.Error()), "path", path)
	}
	info, err := decodePackage(data, ref)
	if err != nil {
		// A corrupt entry is refetched.
		return nil, nil
	}
	return info, nil
}

func (r *Remote) writeCache(ref domain.Reference, body []byte) error {
	if r.cacheDir == "" {
		return nil
	}
	path := r.cachePath(ref)

	tmp, err := os.CreateTemp(r.cacheDir, ".entry-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error()), "path", path)
	}
	return nil
}
