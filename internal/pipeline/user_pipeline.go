package pipeline

import (
	"context"

	"vocabulary/internal/dto"
	"vocabulary/internal/metrics"
	"vocabulary/internal/services"
)

// UserPipeline serves user requests.
type UserPipeline struct {
	service *services.UserService
	runner  runner
}

func NewUserPipeline(service *services.UserService, m *metrics.Metrics) *UserPipeline {
	return &UserPipeline{
		service: service,
		runner:  runner{entity: "user", metrics: m},
	}
}

func (p *UserPipeline) List(ctx context.Context) Result {
	return p.runner.run(ctx, "list", func(ctx context.Context) Result {
		users, err := p.service.GetAllUsers(ctx)
		if err != nil {
			return fromError(err)
		}
		return success("Success", dto.NewUserResponses(users))
	})
}

func (p *UserPipeline) Get(ctx context.Context, id string) Result {
	return p.runner.run(ctx, "get", func(ctx context.Context) Result {
		user, err := p.service.GetUserByID(ctx, id)
		if err != nil {
			return fromError(err)
		}
		if user == nil {
			return fromError(&services.NotFoundError{Entity: "user", Key: "userId", ID: id})
		}
		return success("Success", dto.NewUserResponse(user))
	})
}

func (p *UserPipeline) Create(ctx context.Context, payload []byte) Result {
	return p.runner.run(ctx, "create", func(ctx context.Context) Result {
		var req dto.CreateUserRequest
		if res, ok := decode(payload, &req, "user"); !ok {
			return res
		}
		user, err := p.service.CreateUser(ctx, req)
		if err != nil {
			return fromError(err)
		}
		return created("User created successfully", dto.NewUserResponse(user))
	})
}

func (p *UserPipeline) Update(ctx context.Context, id string, payload []byte) Result {
	return p.runner.run(ctx, "update", func(ctx context.Context) Result {
		patch, res, ok := decodePatch(payload, dto.UserPatchFields, "user")
		if !ok {
			return res
		}
		user, err := p.service.UpdateUser(ctx, id, patch)
		if err != nil {
			return fromError(err)
		}
		return success("User updated successfully", dto.NewUserResponse(user))
	})
}

func (p *UserPipeline) Delete(ctx context.Context, id string) Result {
	return p.runner.run(ctx, "delete", func(ctx context.Context) Result {
		user, err := p.service.DeleteUser(ctx, id)
		if err != nil {
			return fromError(err)
		}
		return success("User deleted successfully", dto.NewUserResponse(user))
	})
}
