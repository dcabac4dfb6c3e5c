// Package audio resolves a call reference to a local audio file and splits it
// into fixed-duration chunks for transcription.
package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"call-audit-go/internal/logger"
)

var httpClient = &http.Client{Timeout: 120 * time.Second}

// Source resolves a call reference. References starting with http:// or
// https:// (plain hosting or presigned S3 links) are fetched directly;
// anything else is treated as a Google Drive file ID.
type Source struct {
	drive *DriveClient
}

func NewSource(drive *DriveClient) *Source {
	return &Source{drive: drive}
}

// Fetch downloads the referenced recording and returns the local file path.
// The caller owns the file and is responsible for removing it.
func (s *Source) Fetch(ctx context.Context, ref string) (string, error) {
	if IsURL(ref) {
		return fetchURL(ctx, ref)
	}
	return s.drive.Download(ctx, ref)
}

// IsURL reports whether the reference is an http(s) link rather than a Drive
// file ID.
func IsURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func fetchURL(ctx context.Context, rawURL string) (string, error) {
	log := logger.New().WithComponent("audio.fetch").WithField("url", rawURL)
	log.Info("downloading recording over http")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("fetch %s: status %d: %s", rawURL, resp.StatusCode, string(body))
	}

	local := filepath.Join(os.TempDir(), localName(rawURL))
	return local, writeFile(local, resp.Body)
}

// localName derives a temp file name from the URL path, falling back to a
// fixed name when the path carries none.
func localName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "call.mp3"
	}
	base := path.Base(u.Path)
	if base == "" || base == "." || base == "/" {
		return "call.mp3"
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	return base + ".mp3"
}
