// Package memory holds in-process repository implementations with the
// same contract as the MongoDB ones, including the id-shape validation
// and paging behavior. Used by tests and local experimentation.
package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dmarchuk/filesmanager/internal/apperr"
	"github.com/dmarchuk/filesmanager/internal/models"
	"github.com/dmarchuk/filesmanager/internal/repository"
)

// oidOrZero mirrors the Mongo implementation: malformed ids collapse to
// the all-zero ObjectID and therefore never match.
func oidOrZero(id string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}

type Files struct {
	mu      sync.Mutex
	records []models.File
}

func NewFiles() *Files {
	return &Files{}
}

func (r *Files) Create(ctx context.Context, f models.File) (models.File, error) {
	if !models.ValidType(f.Type) {
		return models.File{}, apperr.E(apperr.ErrInvalidInput, "Missing type")
	}
	if f.Type == models.TypeFolder && f.LocalPath != "" {
		return models.File{}, apperr.E(apperr.ErrInvalidInput, "folder cannot carry content")
	}
	if f.Type != models.TypeFolder && f.LocalPath == "" {
		return models.File{}, apperr.E(apperr.ErrInvalidInput, "missing local path")
	}
	if f.ParentID == "" {
		f.ParentID = models.RootParentID
	}
	f.ID = primitive.NewObjectID()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, f)
	return f, nil
}

func (r *Files) GetOwned(ctx context.Context, id, ownerID string) (models.File, error) {
	oid, owner := oidOrZero(id), oidOrZero(ownerID)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.records {
		if f.ID == oid && f.UserID == owner {
			return f, nil
		}
	}
	return models.File{}, apperr.E(apperr.ErrNotFound, "Not found")
}

func (r *Files) GetAny(ctx context.Context, id string) (models.File, error) {
	oid := oidOrZero(id)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.records {
		if f.ID == oid {
			return f, nil
		}
	}
	return models.File{}, apperr.E(apperr.ErrNotFound, "Not found")
}

func (r *Files) List(ctx context.Context, ownerID, parentID string, page int64) ([]models.File, error) {
	if page < 0 {
		page = 0
	}
	owner := oidOrZero(ownerID)
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []models.File{}
	for _, f := range r.records {
		if f.UserID == owner && f.ParentID == parentID {
			matched = append(matched, f)
		}
	}
	start := page * repository.PageSize
	if start >= int64(len(matched)) {
		return []models.File{}, nil
	}
	end := start + repository.PageSize
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return matched[start:end], nil
}

func (r *Files) SetVisibility(ctx context.Context, id, ownerID string, public bool) (models.File, error) {
	oid, owner := oidOrZero(id), oidOrZero(ownerID)
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.records {
		if f.ID == oid && f.UserID == owner {
			r.records[i].IsPublic = public
			return r.records[i], nil
		}
	}
	return models.File{}, apperr.E(apperr.ErrNotFound, "Not found")
}

func (r *Files) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}

type Users struct {
	mu      sync.Mutex
	records []models.User
}

func NewUsers() *Users {
	return &Users{}
}

func (r *Users) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, u)
	return u, nil
}

func (r *Users) FindByEmail(ctx context.Context, email string) (models.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.records {
		if u.Email == email {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (r *Users) FindByID(ctx context.Context, id string) (models.User, bool, error) {
	oid := oidOrZero(id)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.records {
		if u.ID == oid {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (r *Users) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}
