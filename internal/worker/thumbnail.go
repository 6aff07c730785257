// Package worker consumes background tasks from the queue. Thumbnail jobs
// load the original image, render the fixed-width derivatives and write
// them beside the original. Handlers return an error to signal failure so
// the queue redelivers; derivative paths are deterministic, which makes
// redelivery and concurrent duplicates safe overwrites.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/disintegration/imaging"
	"github.com/hibiken/asynq"

	"github.com/dmarchuk/filesmanager/internal/apperr"
	"github.com/dmarchuk/filesmanager/internal/models"
	"github.com/dmarchuk/filesmanager/internal/queue"
	"github.com/dmarchuk/filesmanager/internal/repository"
	"github.com/dmarchuk/filesmanager/internal/storage"
)

type ThumbnailProcessor struct {
	files repository.FileRepository
}

func NewThumbnailProcessor(files repository.FileRepository) *ThumbnailProcessor {
	return &ThumbnailProcessor{files: files}
}

// ProcessTask handles one thumbnail job. All derivatives must succeed for
// the job to be acknowledged; a single failed render fails the whole job
// and redelivery regenerates all of them.
func (p *ThumbnailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.ThumbnailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid thumbnail payload: %w", err)
	}
	if payload.FileID == "" {
		return errors.New("missing fileId")
	}
	if payload.UserID == "" {
		return errors.New("missing userId")
	}
	log.Printf("processing %s", payload.Name)

	file, err := p.files.GetOwned(ctx, payload.FileID, payload.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return errors.New("file not found")
	}
	if err != nil {
		return err
	}

	data, err := os.ReadFile(file.LocalPath)
	if err != nil {
		return fmt.Errorf("read original: %w", err)
	}
	src, formatName, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode original: %w", err)
	}
	format, err := imaging.FormatFromExtension(formatName)
	if err != nil {
		format = imaging.JPEG
	}

	// The renders are independent; run them together and fail the job
	// on the first error.
	errc := make(chan error, len(models.ThumbnailWidths))
	for _, width := range models.ThumbnailWidths {
		go func(width int) {
			errc <- renderDerivative(src, format, file.LocalPath, width)
		}(width)
	}
	for range models.ThumbnailWidths {
		if err := <-errc; err != nil {
			return err
		}
	}
	return nil
}

// renderDerivative resizes src to the given width, preserving aspect
// ratio, and overwrites the derivative path.
func renderDerivative(src image.Image, format imaging.Format, localPath string, width int) error {
	thumb := imaging.Resize(src, width, 0, imaging.Lanczos)
	out, err := os.Create(storage.DerivativePath(localPath, width))
	if err != nil {
		return fmt.Errorf("create derivative %d: %w", width, err)
	}
	if err := imaging.Encode(out, thumb, format); err != nil {
		out.Close()
		return fmt.Errorf("encode derivative %d: %w", width, err)
	}
	return out.Close()
}
