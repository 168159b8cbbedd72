package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"userdir/internal/auth"
	"userdir/internal/cache"
	apperrors "userdir/internal/errors"
	"userdir/internal/model"
	"userdir/internal/repository"
)

const (
	// PageSize is the fixed page size for listing.
	PageSize = 10

	userCacheTTL = 5 * time.Minute
)

// UserService exposes the directory operations. Create, Update, Delete
// and List are admin-gated at the route level; Get additionally enforces
// the admin-or-self policy here.
type UserService interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	Get(ctx context.Context, caller *auth.Claims, id string) (*model.User, error)
	Update(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page int) ([]model.User, int64, error)
}

type userService struct {
	repo      repository.UserRepository
	cache     *cache.Client
	validator *UserValidator
}

// NewUserService builds a UserService with repository, cache and validator.
func NewUserService(repo repository.UserRepository, cache *cache.Client, validator *UserValidator) UserService {
	return &userService{repo: repo, cache: cache, validator: validator}
}

func (s *userService) cacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// Create persists a new record without issuing a token; the admin-create
// path only returns the created record.
func (s *userService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	req.Normalize()
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, err
	}

	if err := checkEmailFree(ctx, s.repo, req.Email); err != nil {
		return nil, err
	}

	user, err := newUserFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns the record if the caller is an admin or is reading their
// own profile. Reads go through the fail-safe cache.
func (s *userService) Get(ctx context.Context, caller *auth.Claims, id string) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidUserID
	}

	if caller.Role != model.RoleAdmin && caller.UserID != id {
		return nil, apperrors.ErrNotOwnProfile
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// Update applies a partial update: provided fields overwrite the stored
// values, empty fields leave them unchanged.
func (s *userService) Update(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidUserID
	}

	req.Normalize()
	if err := s.validator.ValidateUpdate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = model.Role(req.Role)
	}
	if req.Status != "" {
		user.Status = model.Status(req.Status)
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// Delete removes the record; deleting an absent id reports not-found
// rather than succeeding silently.
func (s *userService) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrInvalidUserID
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// List returns the requested page in the store's natural order plus the
// total count. Pages are 1-indexed; anything below 1 reads page 1.
func (s *userService) List(ctx context.Context, page int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}

	skip := int64(page-1) * PageSize
	users, err := s.repo.List(ctx, skip, PageSize)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
