package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dmarchuk/filesmanager/internal/apperr"
	"github.com/dmarchuk/filesmanager/internal/models"
)

type MongoUsers struct {
	col *mongo.Collection
}

func NewMongoUsers(col *mongo.Collection) *MongoUsers {
	return &MongoUsers{col: col}
}

func (r *MongoUsers) Create(ctx context.Context, u models.User) (models.User, error) {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return models.User{}, apperr.E(apperr.ErrStorageFailure, "failed to save user")
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return u, nil
}

func (r *MongoUsers) FindByEmail(ctx context.Context, email string) (models.User, bool, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUsers) FindByID(ctx context.Context, id string) (models.User, bool, error) {
	return r.findOne(ctx, bson.M{"_id": oidOrZero(id)})
}

func (r *MongoUsers) findOne(ctx context.Context, filter bson.M) (models.User, bool, error) {
	var u models.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, apperr.E(apperr.ErrStorageFailure, "failed to load user")
	}
	return u, true, nil
}

func (r *MongoUsers) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
