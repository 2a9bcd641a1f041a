package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vocabulary/internal/dto"
	"vocabulary/internal/models"
	"vocabulary/internal/repositories"
	"vocabulary/internal/validation"
)

var userPatchRules = []validation.FieldRule{
	{Field: "firstName", Rule: "required,max=100"},
	{Field: "middleName", Rule: "max=100"},
	{Field: "lastName", Rule: "required,max=100"},
	{Field: "username", Rule: "required,min=3,max=100"},
	{Field: "email", Rule: "required,email"},
	{Field: "password", Rule: "required,min=6,maxbytes=72"},
	{Field: "role", Rule: "required,max=20"},
}

// UserService handles business logic related to users.
type UserService struct {
	repo repositories.UserRepository
	deps Deps
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository, deps Deps) *UserService {
	return &UserService{
		repo: repo,
		deps: deps.withDefaults(),
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

// GetUserByID returns the user or nil when there is none.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return optional(s.repo.GetByID(ctx, id))
}

// GetUserByUsername returns the user or nil when there is none.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return optional(s.repo.GetByUsername(ctx, username))
}

// GetUserByEmail returns the user or nil when there is none.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return optional(s.repo.GetByEmail(ctx, email))
}

// CreateUser validates req, makes sure username and email are free, hashes
// the password and stores the new user.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	if req.Role == "" {
		req.Role = models.DefaultUserRole
	}
	if violations := s.deps.Validator.Struct(req); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	release, err := s.deps.claim(ctx, "User", []uniqueKey{
		{field: "username", value: req.Username, claim: "user:username:" + req.Username},
		{field: "email", value: req.Email, claim: "user:email:" + req.Email},
	})
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.checkUnique(ctx, "", req.Username, req.Email); err != nil {
		return nil, err
	}

	hash, err := s.deps.Hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.deps.now()
	user := &models.User{
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, s.storeError("create", user.ID, err)
	}

	s.deps.publish("user.created", user.ID)
	return user, nil
}

// UpdateUser merges the supplied fields onto the stored user. A supplied
// password is rehashed.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch dto.Patch) (*models.User, error) {
	patch = normaliseRole(patch)
	if violations := s.deps.Validator.Fields(patch, userPatchRules); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	if user == nil {
		return nil, &NotFoundError{Entity: "user", Key: "userId", ID: id}
	}

	var keys []uniqueKey
	var username, email string
	if v, ok := patch.Get("username"); ok && v != user.Username {
		username = v
		keys = append(keys, uniqueKey{field: "username", value: v, claim: "user:username:" + v})
	}
	if v, ok := patch.Get("email"); ok && v != user.Email {
		email = v
		keys = append(keys, uniqueKey{field: "email", value: v, claim: "user:email:" + v})
	}
	release, err := s.deps.claim(ctx, "User", keys)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.checkUnique(ctx, user.ID, username, email); err != nil {
		return nil, err
	}

	patch.Apply("firstName", &user.FirstName)
	patch.Apply("middleName", &user.MiddleName)
	patch.Apply("lastName", &user.LastName)
	patch.Apply("username", &user.Username)
	patch.Apply("email", &user.Email)
	patch.Apply("role", &user.Role)
	if password, ok := patch.Get("password"); ok {
		if user.PasswordHash, err = s.deps.Hasher.Hash(password); err != nil {
			return nil, err
		}
	}
	user.UpdatedAt = s.deps.stamp(user.UpdatedAt)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, s.storeError("update", id, err)
	}

	s.deps.publish("user.updated", user.ID)
	return user, nil
}

// DeleteUser removes the user and returns it as it was before deletion.
func (s *UserService) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	if user == nil {
		return nil, &NotFoundError{Entity: "user", Key: "userId", ID: id}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, s.storeError("delete", id, err)
	}

	s.deps.publish("user.deleted", id)
	return user, nil
}

// checkUnique probes the non-empty values and reports the first one held by
// a user other than selfID.
func (s *UserService) checkUnique(ctx context.Context, selfID, username, email string) error {
	if username != "" {
		existing, err := s.GetUserByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return &ConflictError{Entity: "User", Field: "username", Value: username}
		}
	}
	if email != "" {
		existing, err := s.GetUserByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return &ConflictError{Entity: "User", Field: "email", Value: email}
		}
	}
	return nil
}

func (s *UserService) storeError(op, id string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return &ConflictError{Entity: "User", Field: "username or email"}
	case errors.Is(err, repositories.ErrNotFound):
		return &NotFoundError{Entity: "user", Key: "userId", ID: id}
	}
	return fmt.Errorf("failed to %s user: %w", op, err)
}

// normaliseRole returns a copy of patch with the role upper-cased.
func normaliseRole(patch dto.Patch) dto.Patch {
	role, ok := patch.Get("role")
	if !ok {
		return patch
	}
	out := make(dto.Patch, len(patch))
	for k, v := range patch {
		out[k] = v
	}
	out["role"] = strings.ToUpper(strings.TrimSpace(role))
	return out
}
