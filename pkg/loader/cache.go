package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// cacheDuration determines how long a fetched remote catalog is reused
const cacheDuration = 12 * time.Hour

// cacheEntry is the on-disk format of one fetched remote source
type cacheEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
}

// cachePath names the entry file for rawURL. The URL is hashed so that
// query strings and credentials never reach the filesystem.
func cachePath(dir, rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return filepath.Join(dir, hex.EncodeToString(sum[:8])+".json")
}

// readCache returns the cached entry for rawURL if one exists and has not
// expired.
func readCache(dir, rawURL string) (cacheEntry, bool) {
	data, err := os.ReadFile(cachePath(dir, rawURL))
	if err != nil {
		return cacheEntry{}, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return cacheEntry{}, false
	}

	if entry.URL != Describe(rawURL) || time.Since(entry.Timestamp) > cacheDuration {
		return cacheEntry{}, false
	}
	return entry, true
}

// writeCache saves a fetched body. Failures only cost a refetch next time.
func writeCache(dir, rawURL, contentType string, body []byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	entry := cacheEntry{
		Timestamp:   time.Now(),
		URL:         Describe(rawURL),
		ContentType: contentType,
		Body:        body,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cachePath(dir, rawURL), data, 0644)
}
