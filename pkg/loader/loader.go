// Package loader reads course records from a source and inserts them into
// a catalog.Store.
//
// A source is one of:
//
//   - a local file in the comma separated record format (see Parse)
//   - a local .html/.htm file holding a course table (see ParseHTML)
//   - an http:// or https:// URL serving either of the above
//   - a postgres:// or postgresql:// connection string
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"courseplanner/pkg/catalog"

	"go.uber.org/zap"
)

// ErrOpen is wrapped by every error caused by a source that could not be
// opened. Nothing is inserted into the store in that case.
var ErrOpen = errors.New("could not open")

// Result summarizes a single load.
type Result struct {
	// Source is the source as shown by Describe.
	Source  string
	Records int
	Skipped int
	// Redacted reports that Source hides a password, so it cannot be
	// loaded again as is.
	Redacted bool
}

// Option configures Load.
type Option func(*loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(l *loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithClient sets the HTTP client used for remote sources.
func WithClient(c *Client) Option {
	return func(l *loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithCache reuses remote sources fetched within the last 12 hours from
// dir, and stores fresh fetches there. Local files and databases are never
// cached.
func WithCache(dir string) Option {
	return func(l *loader) { l.cacheDir = dir }
}

type loader struct {
	log      *zap.Logger
	client   *Client
	cacheDir string
}

// Load reads every record from source into store. Records are inserted in
// source order.
func Load(ctx context.Context, source string, store *catalog.Store, opts ...Option) (Result, error) {
	l := &loader{log: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}

	var (
		res Result
		err error
	)
	switch {
	case isPostgres(source):
		res, err = l.loadPostgres(ctx, source, store)
	case isRemote(source):
		res, err = l.loadRemote(ctx, source, store)
	default:
		res, err = l.loadFile(source, store)
	}
	res.Source = Describe(source)
	res.Redacted = HasPassword(source)

	if err != nil {
		l.log.Warn("catalog load failed", zap.String("source", res.Source), zap.Error(err))
		return res, err
	}

	l.log.Info("catalog loaded",
		zap.String("source", res.Source),
		zap.Int("records", res.Records),
		zap.Int("skipped", res.Skipped),
		zap.Int("height", store.Height()))
	return res, nil
}

func (l *loader) loadFile(name string, store *catalog.Store) (Result, error) {
	file, err := os.Open(name)
	if err != nil {
		return Result{}, fmt.Errorf("%w '%s': %w", ErrOpen, name, err)
	}
	defer file.Close()

	if isHTML(name) {
		return parseHTML(file, store, l.log)
	}
	return parseText(file, store, l.log)
}

func (l *loader) loadRemote(ctx context.Context, rawURL string, store *catalog.Store) (Result, error) {
	if l.cacheDir != "" {
		if entry, ok := readCache(l.cacheDir, rawURL); ok {
			l.log.Debug("using cached catalog", zap.String("source", entry.URL), zap.Time("fetched", entry.Timestamp))
			return l.parseRemote(rawURL, entry.ContentType, bytes.NewReader(entry.Body), store)
		}
	}

	client := l.client
	if client == nil {
		client = NewClient()
	}

	resp, err := client.Get(ctx, rawURL)
	if err != nil {
		return Result{}, fmt.Errorf("%w '%s': %w", ErrOpen, Describe(rawURL), err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if l.cacheDir == "" {
		return l.parseRemote(rawURL, contentType, resp.Body, store)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read '%s': %w", Describe(rawURL), err)
	}
	if err := writeCache(l.cacheDir, rawURL, contentType, body); err != nil {
		l.log.Debug("could not cache remote catalog", zap.Error(err))
	}
	return l.parseRemote(rawURL, contentType, bytes.NewReader(body), store)
}

func (l *loader) parseRemote(rawURL, contentType string, r io.Reader, store *catalog.Store) (Result, error) {
	if isHTML(remotePath(rawURL)) || strings.Contains(contentType, "html") {
		return parseHTML(r, store, l.log)
	}
	return parseText(r, store, l.log)
}

// Describe returns source in a form safe to show or log: passwords in
// connection strings and URLs are redacted.
func Describe(source string) string {
	if !isPostgres(source) && !isRemote(source) {
		return source
	}
	u, err := url.Parse(source)
	if err != nil {
		return source
	}
	if q := u.Query(); q.Has("password") {
		q.Set("password", "xxxxx")
		u.RawQuery = q.Encode()
	}
	return u.Redacted()
}

// HasPassword reports whether source is a URL or connection string that
// carries a password, in the userinfo or as a password parameter.
func HasPassword(source string) bool {
	if !isPostgres(source) && !isRemote(source) {
		return false
	}
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	if _, ok := u.User.Password(); ok {
		return true
	}
	return u.Query().Has("password")
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func remotePath(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Path
	}
	return rawURL
}

func isPostgres(source string) bool {
	return strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://")
}

func isHTML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".html" || ext == ".htm"
}
