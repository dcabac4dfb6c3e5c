package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"call-audit-go/internal/logger"
)

// Segmenter shells out to ffmpeg to cut a recording into fixed-duration
// chunks the transcription API will accept. Chunks are re-encoded to 16kHz
// mono mp3; stream copy leaves corrupted frames at segment boundaries.
type Segmenter struct {
	ChunkSeconds int
}

func NewSegmenter(chunkSeconds int) *Segmenter {
	if chunkSeconds <= 0 {
		chunkSeconds = 600
	}
	return &Segmenter{ChunkSeconds: chunkSeconds}
}

// Split writes chunk files into a fresh temp directory and returns their
// paths in playback order. Segmentation failure is fatal for the request.
func (s *Segmenter) Split(ctx context.Context, srcPath string) ([]string, error) {
	log := logger.New().WithComponent("audio.segment").WithField("src", srcPath)

	outDir, err := os.MkdirTemp("", "chunks-")
	if err != nil {
		return nil, fmt.Errorf("chunk dir: %w", err)
	}
	pattern := filepath.Join(outDir, "chunk_%03d.mp3")

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", srcPath,
		"-f", "segment",
		"-segment_time", strconv.Itoa(s.ChunkSeconds),
		"-ar", "16000", "-ac", "1", "-vn",
		"-codec:a", "libmp3lame",
		pattern,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		log.WithField("stderr", stderr.String()).Error("ffmpeg segmentation failed")
		return nil, fmt.Errorf("ffmpeg segmentation failed: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	var chunks []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".mp3") {
			chunks = append(chunks, filepath.Join(outDir, e.Name()))
		}
	}
	sort.Strings(chunks)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks produced by ffmpeg")
	}
	log.WithField("chunks", len(chunks)).Info("audio segmented")
	return chunks, nil
}

// Normalize re-encodes an arbitrary input into 16kHz mono mp3 before
// segmentation. Unlike Split, a failed conversion is logged and the original
// file is used as-is.
func (s *Segmenter) Normalize(ctx context.Context, srcPath string) string {
	log := logger.New().WithComponent("audio.segment").WithField("src", srcPath)

	converted := strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + "_norm.mp3"
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", srcPath,
		"-ar", "16000", "-ac", "1", "-vn",
		"-codec:a", "libmp3lame",
		converted,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		log.WithField("stderr", stderr.String()).Warn("conversion failed, continuing with original file")
		_ = os.Remove(converted)
		return srcPath
	}
	_ = os.Remove(srcPath)
	return converted
}
