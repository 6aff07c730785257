package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dmarchuk/filesmanager/internal/apperr"
	"github.com/dmarchuk/filesmanager/internal/models"
	"github.com/dmarchuk/filesmanager/internal/queue"
	"github.com/dmarchuk/filesmanager/internal/repository"
	"github.com/dmarchuk/filesmanager/internal/storage"
)

// FileService owns the upload pipeline and the metadata read paths.
type FileService struct {
	files repository.FileRepository
	store *storage.Store
	queue queue.Enqueuer
}

func NewFileService(files repository.FileRepository, store *storage.Store, q queue.Enqueuer) *FileService {
	return &FileService{files: files, store: store, queue: q}
}

// UploadRequest is the decoded upload body. ParentID is loosely typed
// because clients send either the integer 0 or a hex string.
type UploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID any    `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

// normalizeParent maps the wire parentId onto the stored sentinel form.
func normalizeParent(v any) string {
	switch t := v.(type) {
	case nil:
		return models.RootParentID
	case float64:
		if t == 0 {
			return models.RootParentID
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		if t == "" || t == models.RootParentID {
			return models.RootParentID
		}
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Upload validates the request, persists the payload bytes, inserts the
// metadata record and, for images, enqueues a thumbnail job. A failed
// enqueue does not roll the upload back; the record simply exists without
// derivatives until reprocessing.
func (s *FileService) Upload(ctx context.Context, ownerID string, req UploadRequest) (models.FileResponse, error) {
	if req.Name == "" {
		return models.FileResponse{}, apperr.E(apperr.ErrInvalidInput, "Missing name")
	}
	if !models.ValidType(req.Type) {
		return models.FileResponse{}, apperr.E(apperr.ErrInvalidInput, "Missing type")
	}
	if req.Data == "" && req.Type != models.TypeFolder {
		return models.FileResponse{}, apperr.E(apperr.ErrInvalidInput, "Missing data")
	}

	parentID := normalizeParent(req.ParentID)
	if parentID != models.RootParentID {
		// Parent must exist and be a folder. Its ownership is deliberately
		// not compared against the uploader; see DESIGN.md.
		parent, err := s.files.GetAny(ctx, parentID)
		if err != nil {
			return models.FileResponse{}, apperr.E(apperr.ErrInvalidInput, "Parent not found")
		}
		if parent.Type != models.TypeFolder {
			return models.FileResponse{}, apperr.E(apperr.ErrInvalidInput, "Parent is not a folder")
		}
	}

	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return models.FileResponse{}, apperr.E(apperr.ErrUnauthorized, "Unauthorized")
	}

	record := models.File{
		UserID:   owner,
		Name:     req.Name,
		Type:     req.Type,
		IsPublic: req.IsPublic,
		ParentID: parentID,
	}

	if req.Type != models.TypeFolder {
		raw, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return models.FileResponse{}, apperr.E(apperr.ErrInvalidInput, "Missing data")
		}
		path, err := s.store.Save(raw)
		if err != nil {
			return models.FileResponse{}, apperr.E(apperr.ErrStorageFailure, "failed to store file")
		}
		record.LocalPath = path
	}

	created, err := s.files.Create(ctx, record)
	if err != nil {
		return models.FileResponse{}, err
	}

	if created.Type == models.TypeImage {
		fileID := created.ID.Hex()
		payload := queue.ThumbnailPayload{
			FileID: fileID,
			UserID: ownerID,
			Name:   fmt.Sprintf("Image thumbnail [%s-%s]", ownerID, fileID),
		}
		if err := s.queue.EnqueueThumbnail(ctx, payload); err != nil {
			log.Printf("failed to enqueue thumbnail job for %s: %v", fileID, err)
		}
	}
	return created.Response(), nil
}

// Get returns the owner-scoped record.
func (s *FileService) Get(ctx context.Context, id, ownerID string) (models.FileResponse, error) {
	file, err := s.files.GetOwned(ctx, id, ownerID)
	if err != nil {
		return models.FileResponse{}, err
	}
	return file.Response(), nil
}

// List returns one page of the owner's records under parentID.
func (s *FileService) List(ctx context.Context, ownerID string, parentID any, page int64) ([]models.FileResponse, error) {
	files, err := s.files.List(ctx, ownerID, normalizeParent(parentID), page)
	if err != nil {
		return nil, err
	}
	out := make([]models.FileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, f.Response())
	}
	return out, nil
}

// SetVisibility publishes or unpublishes the owner-scoped record.
func (s *FileService) SetVisibility(ctx context.Context, id, ownerID string, public bool) (models.FileResponse, error) {
	file, err := s.files.SetVisibility(ctx, id, ownerID, public)
	if err != nil {
		return models.FileResponse{}, err
	}
	return file.Response(), nil
}

// FileData serves the stored bytes for a record, or one of its derivatives
// when size is given. viewerID is the resolved session user or empty for
// anonymous callers; a private file is visible to its owner only, and
// everyone else sees not-found.
func (s *FileService) FileData(ctx context.Context, id, size, viewerID string) ([]byte, string, error) {
	file, err := s.files.GetAny(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if file.Type == models.TypeFolder {
		return nil, "", apperr.E(apperr.ErrInvalidInput, "A folder doesn't have content")
	}
	if !file.IsPublic && viewerID != file.UserID.Hex() {
		return nil, "", apperr.E(apperr.ErrNotFound, "Not found")
	}

	path := file.LocalPath
	if size != "" {
		width, err := strconv.Atoi(size)
		if err != nil || !validThumbnailWidth(width) {
			return nil, "", apperr.E(apperr.ErrInvalidInput, "Invalid size parameter")
		}
		path = storage.DerivativePath(file.LocalPath, width)
	}

	data, err := s.store.Read(path)
	if os.IsNotExist(err) {
		// Expected for an image whose worker job has not completed yet.
		return nil, "", apperr.E(apperr.ErrNotFound, "Not found")
	}
	if err != nil {
		return nil, "", apperr.E(apperr.ErrStorageFailure, "failed to read file")
	}

	contentType := mime.TypeByExtension(filepath.Ext(file.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

func validThumbnailWidth(width int) bool {
	for _, w := range models.ThumbnailWidths {
		if w == width {
			return true
		}
	}
	return false
}
