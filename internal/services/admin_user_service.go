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

var adminUserPatchRules = []validation.FieldRule{
	{Field: "role", Rule: "required,oneof=ADMIN STAFF"},
	{Field: "firstName", Rule: "required,max=100"},
	{Field: "middleName", Rule: "required,max=100"},
	{Field: "lastName", Rule: "required,max=100"},
	{Field: "username", Rule: "required,min=3,max=100"},
	{Field: "email", Rule: "required,email"},
	{Field: "password", Rule: "required,min=6,maxbytes=72"},
}

// AdminUserService handles business logic related to back-office accounts.
type AdminUserService struct {
	repo repositories.AdminUserRepository
	deps Deps
}

// NewAdminUserService creates a new AdminUserService.
func NewAdminUserService(repo repositories.AdminUserRepository, deps Deps) *AdminUserService {
	return &AdminUserService{
		repo: repo,
		deps: deps.withDefaults(),
	}
}

func (s *AdminUserService) GetAllAdminUsers(ctx context.Context) ([]models.AdminUser, error) {
	return s.repo.GetAll(ctx)
}

func (s *AdminUserService) GetAdminUserByID(ctx context.Context, id string) (*models.AdminUser, error) {
	return optional(s.repo.GetByID(ctx, id))
}

func (s *AdminUserService) GetAdminUserByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	return optional(s.repo.GetByUsername(ctx, username))
}

func (s *AdminUserService) GetAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return optional(s.repo.GetByEmail(ctx, email))
}

// CreateAdminUser validates req, makes sure username and email are free
// among admin users, hashes the password and stores the account.
func (s *AdminUserService) CreateAdminUser(ctx context.Context, req dto.CreateAdminUserRequest) (*models.AdminUser, error) {
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	if violations := s.deps.Validator.Struct(req); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	role, _ := models.ParseRole(req.Role)

	release, err := s.deps.claim(ctx, "Admin user", []uniqueKey{
		{field: "username", value: req.Username, claim: "admin_user:username:" + req.Username},
		{field: "email", value: req.Email, claim: "admin_user:email:" + req.Email},
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
	admin := &models.AdminUser{
		Role:         role,
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, s.storeError("create", admin.ID, err)
	}

	s.deps.publish("admin_user.created", admin.ID)
	return admin, nil
}

// UpdateAdminUser merges the supplied fields onto the stored account.
func (s *AdminUserService) UpdateAdminUser(ctx context.Context, id string, patch dto.Patch) (*models.AdminUser, error) {
	patch = normaliseRole(patch)
	if violations := s.deps.Validator.Fields(patch, adminUserPatchRules); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	admin, err := s.GetAdminUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin user %s: %w", id, err)
	}
	if admin == nil {
		return nil, &NotFoundError{Entity: "admin user", Key: "adminUserId", ID: id}
	}

	var keys []uniqueKey
	var username, email string
	if v, ok := patch.Get("username"); ok && v != admin.Username {
		username = v
		keys = append(keys, uniqueKey{field: "username", value: v, claim: "admin_user:username:" + v})
	}
	if v, ok := patch.Get("email"); ok && v != admin.Email {
		email = v
		keys = append(keys, uniqueKey{field: "email", value: v, claim: "admin_user:email:" + v})
	}
	release, err := s.deps.claim(ctx, "Admin user", keys)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.checkUnique(ctx, admin.ID, username, email); err != nil {
		return nil, err
	}

	if v, ok := patch.Get("role"); ok {
		admin.Role, _ = models.ParseRole(v)
	}
	patch.Apply("firstName", &admin.FirstName)
	patch.Apply("middleName", &admin.MiddleName)
	patch.Apply("lastName", &admin.LastName)
	patch.Apply("username", &admin.Username)
	patch.Apply("email", &admin.Email)
	if password, ok := patch.Get("password"); ok {
		if admin.PasswordHash, err = s.deps.Hasher.Hash(password); err != nil {
			return nil, err
		}
	}
	admin.UpdatedAt = s.deps.stamp(admin.UpdatedAt)

	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, s.storeError("update", id, err)
	}

	s.deps.publish("admin_user.updated", admin.ID)
	return admin, nil
}

// DeleteAdminUser removes the account and returns it as it was before
// deletion.
func (s *AdminUserService) DeleteAdminUser(ctx context.Context, id string) (*models.AdminUser, error) {
	admin, err := s.GetAdminUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin user %s: %w", id, err)
	}
	if admin == nil {
		return nil, &NotFoundError{Entity: "admin user", Key: "adminUserId", ID: id}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, s.storeError("delete", id, err)
	}

	s.deps.publish("admin_user.deleted", id)
	return admin, nil
}

func (s *AdminUserService) checkUnique(ctx context.Context, selfID, username, email string) error {
	if username != "" {
		existing, err := s.GetAdminUserByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return &ConflictError{Entity: "Admin user", Field: "username", Value: username}
		}
	}
	if email != "" {
		existing, err := s.GetAdminUserByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return &ConflictError{Entity: "Admin user", Field: "email", Value: email}
		}
	}
	return nil
}

func (s *AdminUserService) storeError(op, id string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return &ConflictError{Entity: "Admin user", Field: "username or email"}
	case errors.Is(err, repositories.ErrNotFound):
		return &NotFoundError{Entity: "admin user", Key: "adminUserId", ID: id}
	}
	return fmt.Errorf("failed to %s admin user: %w", op, err)
}
