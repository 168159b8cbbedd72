package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"userdir/internal/model"
)

// UserRepository defines persistence operations over the user collection.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id bson.ObjectID) error
	List(ctx context.Context, skip, limit int64) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
}
