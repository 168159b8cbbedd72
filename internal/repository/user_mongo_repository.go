package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"userdir/internal/db"
	apperrors "userdir/internal/errors"
	"userdir/internal/model"
)

type userMongoRepository struct {
	col *mongo.Collection
}

// NewUserRepository builds a MongoDB-backed repository.
func NewUserRepository(m *db.Mongo) UserRepository {
	return &userMongoRepository{col: m.Collection(db.UsersCollection)}
}

// wrapError converts driver errors to domain errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.ErrUserNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrDuplicateEmail
	}
	return err
}

func (r *userMongoRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, user)
	return wrapError(err)
}

func (r *userMongoRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

func (r *userMongoRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

func (r *userMongoRepository) Update(ctx context.Context, user *model.User) error {
	res, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: user.ID}}, user)
	if err != nil {
		return wrapError(err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *userMongoRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return wrapError(err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// List returns one page in the store's natural order; no sort key is
// applied.
func (r *userMongoRepository) List(ctx context.Context, skip, limit int64) ([]model.User, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	users := []model.User{}
	for cursor.Next(ctx) {
		var user model.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userMongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.D{})
}
