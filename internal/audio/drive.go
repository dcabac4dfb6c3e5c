package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"call-audit-go/internal/logger"
)

// DriveClient downloads call recordings shared through Google Drive using a
// service-account credential.
type DriveClient struct {
	svc *drive.Service
}

// NewDriveClient builds the Drive service from a credentials file. The file
// path is validated at config load time; this fails only on malformed
// credentials.
func NewDriveClient(ctx context.Context, credentialsFile string) (*DriveClient, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &DriveClient{svc: svc}, nil
}

// Download fetches the file's media content into the system temp directory.
// The local file keeps the Drive file's base name with an .mp3 extension.
func (c *DriveClient) Download(ctx context.Context, fileID string) (string, error) {
	log := logger.New().WithComponent("audio.drive").WithField("file_id", fileID)

	meta, err := c.svc.Files.Get(fileID).Fields("name").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("drive metadata for %s: %w", fileID, err)
	}
	base := strings.TrimSuffix(meta.Name, filepath.Ext(meta.Name))
	log.WithField("name", meta.Name).Info("downloading recording from drive")

	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return "", fmt.Errorf("drive download for %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	path := filepath.Join(os.TempDir(), base+".mp3")
	return path, writeFile(path, resp.Body)
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
