package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"vocabulary/internal/dto"
	"vocabulary/internal/models"
	"vocabulary/internal/repositories"
	"vocabulary/internal/services"
	"vocabulary/internal/uniqueness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func annRequest() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Username:  "ann",
		Email:     "ann@x.com",
		Password:  "secret",
		FirstName: "Ann",
		LastName:  "Lee",
	}
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	events := &recordingPublisher{}
	repo := repositories.NewMemoryUserRepository()
	service := services.NewUserService(repo, testDeps(events))

	user, err := service.CreateUser(ctx, annRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ann", user.Username)
	assert.Equal(t, models.DefaultUserRole, user.Role)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
	assert.Equal(t, []string{"user.created"}, events.routingKeys())
	assert.Equal(t, user.ID, events.events[0].ID)

	// A second create with the same username conflicts and writes nothing.
	dup := annRequest()
	dup.Email = "other@x.com"
	_, err = service.CreateUser(ctx, dup)
	var conflict *services.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "username", conflict.Field)
	assert.Equal(t, "User with username ann already exists", conflict.Error())

	dupEmail := annRequest()
	dupEmail.Username = "annie"
	_, err = service.CreateUser(ctx, dupEmail)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)

	all, err := service.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Len(t, events.routingKeys(), 1)
}

func TestUserService_CreateUser_Role(t *testing.T) {
	ctx := context.Background()
	service := services.NewUserService(repositories.NewMemoryUserRepository(), testDeps(nil))

	req := annRequest()
	req.Role = " staff "
	user, err := service.CreateUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "STAFF", user.Role)
}

func TestUserService_CreateUser_ValidationBlocksWrite(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, testDeps(nil))

	req := annRequest()
	req.Username = ""
	req.Email = "not-an-email"
	_, err := service.CreateUser(context.Background(), req)

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Required username, Invalid email format", verr.Error())
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_StoreDuplicate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, testDeps(nil))

	mockRepo.On("GetByUsername", ctx, "ann").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("GetByEmail", ctx, "ann@x.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicate).Once()

	_, err := service.CreateUser(ctx, annRequest())
	var conflict *services.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "User with the given username or email already exists", conflict.Error())
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_InternalErrors(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, testDeps(nil))

	mockRepo.On("GetByUsername", ctx, "ann").Return(nil, errors.New("connection reset")).Once()
	_, err := service.CreateUser(ctx, annRequest())
	require.Error(t, err)
	var verr *services.ValidationError
	var conflict *services.ConflictError
	var notFound *services.NotFoundError
	assert.False(t, errors.As(err, &verr) || errors.As(err, &conflict) || errors.As(err, &notFound))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	deps := testDeps(nil)
	deps.Hasher = failingHasher{}
	service = services.NewUserService(repositories.NewMemoryUserRepository(), deps)
	_, err = service.CreateUser(ctx, annRequest())
	assert.EqualError(t, err, "hasher unavailable")
}

func TestUserService_CreateUser_ClaimHeld(t *testing.T) {
	ctx := context.Background()
	deps := testDeps(nil)
	guard := uniqueness.NewLocalGuard(time.Minute)
	deps.Guard = guard
	repo := repositories.NewMemoryUserRepository()
	service := services.NewUserService(repo, deps)

	release, err := guard.Claim(ctx, "user:email:ann@x.com")
	require.NoError(t, err)

	_, err = service.CreateUser(ctx, annRequest())
	var conflict *services.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)

	// The username claim taken before the failure was given back.
	release()
	_, err = service.CreateUser(ctx, annRequest())
	require.NoError(t, err)
}

func TestUserService_CreateUser_PublishFailureIgnored(t *testing.T) {
	events := &recordingPublisher{err: errors.New("broker down")}
	service := services.NewUserService(repositories.NewMemoryUserRepository(), testDeps(events))

	user, err := service.CreateUser(context.Background(), annRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUserService_GetUserByID(t *testing.T) {
	ctx := context.Background()
	service := services.NewUserService(repositories.NewMemoryUserRepository(), testDeps(nil))
	created, err := service.CreateUser(ctx, annRequest())
	require.NoError(t, err)

	first, err := service.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	second, err := service.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	missing, err := service.GetUserByID(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	byUsername, err := service.GetUserByUsername(ctx, "nobody")
	assert.NoError(t, err)
	assert.Nil(t, byUsername)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	events := &recordingPublisher{}
	service := services.NewUserService(repositories.NewMemoryUserRepository(), testDeps(events))
	created, err := service.CreateUser(ctx, annRequest())
	require.NoError(t, err)

	updated, err := service.UpdateUser(ctx, created.ID, dto.Patch{"lastName": "Park", "middleName": "Q"})
	require.NoError(t, err)
	assert.Equal(t, "Park", updated.LastName)
	assert.Equal(t, "Q", updated.MiddleName)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Username, updated.Username)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	rehashed, err := service.UpdateUser(ctx, created.ID, dto.Patch{"password": "newsecret"})
	require.NoError(t, err)
	assert.NotEqual(t, created.PasswordHash, rehashed.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(rehashed.PasswordHash), []byte("newsecret")))

	// Re-sending the current username is not a conflict with itself.
	same, err := service.UpdateUser(ctx, created.ID, dto.Patch{"username": "ann", "role": "admin"})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", same.Role)

	assert.Equal(t, []string{"user.created", "user.updated", "user.updated", "user.updated"}, events.routingKeys())
}

func TestUserService_UpdateUser_Errors(t *testing.T) {
	ctx := context.Background()
	service := services.NewUserService(repositories.NewMemoryUserRepository(), testDeps(nil))
	ann, err := service.CreateUser(ctx, annRequest())
	require.NoError(t, err)
	bobReq := annRequest()
	bobReq.Username, bobReq.Email = "bob", "bob@x.com"
	_, err = service.CreateUser(ctx, bobReq)
	require.NoError(t, err)

	_, err = service.UpdateUser(ctx, "missing", dto.Patch{"lastName": "X"})
	var notFound *services.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "No user found with userId: missing", notFound.Error())

	_, err = service.UpdateUser(ctx, ann.ID, dto.Patch{"email": "bob@x.com"})
	var conflict *services.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)

	_, err = service.UpdateUser(ctx, ann.ID, dto.Patch{"email": "broken", "firstName": ""})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Required firstName, Invalid email format", verr.Error())

	unchanged, err := service.GetUserByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, ann.Email, unchanged.Email)
	assert.Equal(t, ann.FirstName, unchanged.FirstName)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	events := &recordingPublisher{}
	service := services.NewUserService(repositories.NewMemoryUserRepository(), testDeps(events))
	created, err := service.CreateUser(ctx, annRequest())
	require.NoError(t, err)

	snapshot, err := service.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, snapshot)

	gone, err := service.GetUserByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	_, err = service.DeleteUser(ctx, created.ID)
	var notFound *services.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"user.created", "user.deleted"}, events.routingKeys())
}

func TestUserService_MultibytePasswordOverByteLimit(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, testDeps(nil))

	req := annRequest()
	req.Password = strings.Repeat("é", 40)
	_, err := service.CreateUser(ctx, req)

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password must be at most 72 bytes", verr.Error())
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	memService := services.NewUserService(repositories.NewMemoryUserRepository(), testDeps(nil))
	ann, err := memService.CreateUser(ctx, annRequest())
	require.NoError(t, err)
	_, err = memService.UpdateUser(ctx, ann.ID, dto.Patch{"password": strings.Repeat("é", 40)})
	require.ErrorAs(t, err, &verr)

	stored, err := memService.GetUserByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, ann.PasswordHash, stored.PasswordHash)
}
