// Package processor runs the per-call audit pipeline: acquire audio, segment,
// transcribe, prompt, extract and validate. One strictly sequential chain per
// request; no state survives the response.
package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"call-audit-go/internal/logger"
	"call-audit-go/internal/rubric"
	"call-audit-go/internal/score"
	"call-audit-go/internal/transcript"
)

// Collaborator boundaries. Concrete implementations live in internal/audio,
// internal/whisper and internal/llm; the pipeline only needs these shapes.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (string, error)
}

type Segmenter interface {
	Split(ctx context.Context, path string) ([]string, error)
	Normalize(ctx context.Context, path string) string
}

type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Processor struct {
	source      Fetcher
	segmenter   Segmenter
	transcriber Transcriber
	llm         Completer
	rubric      rubric.Rubric
}

func New(source Fetcher, segmenter Segmenter, transcriber Transcriber, llm Completer, r rubric.Rubric) *Processor {
	return &Processor{
		source:      source,
		segmenter:   segmenter,
		transcriber: transcriber,
		llm:         llm,
		rubric:      r,
	}
}

// Result is the outcome of one audited call.
type Result struct {
	Report      string
	Scores      score.Map
	Checklist   *score.ConsultationChecklist
	Behavior    *score.ClientBehavior
	Corrections []score.Correction
	Transcript  string
	DurationMs  int64
}

// Audit processes one call reference end to end.
func (p *Processor) Audit(ctx context.Context, ref string) (*Result, error) {
	log := logger.New().WithComponent("processor").WithField("ref", ref)
	start := time.Now()

	srcPath, err := p.source.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("audio download failed: %w", err)
	}
	srcPath = p.segmenter.Normalize(ctx, srcPath)

	chunks, err := p.segmenter.Split(ctx, srcPath)
	if err != nil {
		_ = os.Remove(srcPath)
		return nil, fmt.Errorf("audio segmentation failed: %w", err)
	}

	parts, err := p.transcribeAll(ctx, srcPath, chunks)
	if err != nil {
		return nil, err
	}

	text := transcript.Join(parts)
	log.WithField("transcript_len", len(text)).Info("transcript assembled")

	raw, err := p.llm.Complete(ctx, p.rubric.Prompt(text))
	if err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}

	res := &Result{Transcript: text}
	ext, err := score.Extract(p.rubric, raw)
	if err != nil {
		// expected outcome: fall back to regex scraping over the full,
		// unmodified text
		log.WithError(err).Warn("marker block parse failed, using regex fallback")
		res.Scores = score.Fallback(p.rubric, raw)
		res.Report = raw
	} else {
		res.Scores = ext.Scores
		res.Report = ext.Report
		res.Checklist = ext.Checklist
		res.Behavior = ext.Behavior
	}

	validated, corrections := score.Validate(p.rubric, res.Scores)
	res.Scores = validated
	res.Corrections = corrections
	for _, c := range corrections {
		log.WithField("key", c.Key).
			WithField("original", c.Original).
			WithField("corrected", c.Corrected).
			Info("score corrected")
	}

	res.DurationMs = time.Since(start).Milliseconds()
	return res, nil
}

// transcribeAll transcribes the chunks in order. The chunk files and the
// source recording are removed on every exit path, success or failure.
func (p *Processor) transcribeAll(ctx context.Context, srcPath string, chunks []string) ([]string, error) {
	defer func() {
		for _, c := range chunks {
			_ = os.Remove(c)
		}
		if len(chunks) > 0 {
			_ = os.Remove(filepath.Dir(chunks[0]))
		}
		_ = os.Remove(srcPath)
	}()

	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		text, err := p.transcriber.Transcribe(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("transcription failed: %w", err)
		}
		parts = append(parts, text)
	}
	return parts, nil
}
