package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmarchuk/filesmanager/internal/apperr"
	"github.com/dmarchuk/filesmanager/internal/models"
)

// oidOrZero maps an externally supplied id onto an ObjectID. A malformed
// id becomes the all-zero ObjectID, which never matches a stored record,
// so bad input degrades to not-found instead of a query error.
func oidOrZero(id string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}

type MongoFiles struct {
	col *mongo.Collection
}

func NewMongoFiles(col *mongo.Collection) *MongoFiles {
	return &MongoFiles{col: col}
}

func (r *MongoFiles) Create(ctx context.Context, f models.File) (models.File, error) {
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
	res, err := r.col.InsertOne(ctx, f)
	if err != nil {
		return models.File{}, apperr.E(apperr.ErrStorageFailure, "failed to save file metadata")
	}
	f.ID = res.InsertedID.(primitive.ObjectID)
	return f, nil
}

func (r *MongoFiles) GetOwned(ctx context.Context, id, ownerID string) (models.File, error) {
	return r.findOne(ctx, bson.M{"_id": oidOrZero(id), "userId": oidOrZero(ownerID)})
}

func (r *MongoFiles) GetAny(ctx context.Context, id string) (models.File, error) {
	return r.findOne(ctx, bson.M{"_id": oidOrZero(id)})
}

func (r *MongoFiles) findOne(ctx context.Context, filter bson.M) (models.File, error) {
	var f models.File
	err := r.col.FindOne(ctx, filter).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.File{}, apperr.E(apperr.ErrNotFound, "Not found")
	}
	if err != nil {
		return models.File{}, apperr.E(apperr.ErrStorageFailure, "failed to load file metadata")
	}
	return f, nil
}

func (r *MongoFiles) List(ctx context.Context, ownerID, parentID string, page int64) ([]models.File, error) {
	if page < 0 {
		page = 0
	}
	filter := bson.M{"userId": oidOrZero(ownerID), "parentId": parentID}
	opts := options.Find().SetSkip(page * PageSize).SetLimit(PageSize)
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.E(apperr.ErrStorageFailure, "failed to list files")
	}
	defer cursor.Close(ctx)

	files := []models.File{}
	if err := cursor.All(ctx, &files); err != nil {
		return nil, apperr.E(apperr.ErrStorageFailure, "failed to decode file metadata")
	}
	return files, nil
}

func (r *MongoFiles) SetVisibility(ctx context.Context, id, ownerID string, public bool) (models.File, error) {
	filter := bson.M{"_id": oidOrZero(id), "userId": oidOrZero(ownerID)}
	update := bson.M{"$set": bson.M{"isPublic": public}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var f models.File
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.File{}, apperr.E(apperr.ErrNotFound, "Not found")
	}
	if err != nil {
		return models.File{}, apperr.E(apperr.ErrStorageFailure, "failed to update file metadata")
	}
	return f, nil
}

func (r *MongoFiles) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
