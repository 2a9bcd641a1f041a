package pipeline

import (
	"context"

	"vocabulary/internal/dto"
	"vocabulary/internal/metrics"
	"vocabulary/internal/services"
)

// AdminUserPipeline serves admin user requests for both REST and GraphQL.
type AdminUserPipeline struct {
	service *services.AdminUserService
	runner  runner
}

func NewAdminUserPipeline(service *services.AdminUserService, m *metrics.Metrics) *AdminUserPipeline {
	return &AdminUserPipeline{
		service: service,
		runner:  runner{entity: "admin_user", metrics: m},
	}
}

func (p *AdminUserPipeline) List(ctx context.Context) Result {
	return p.runner.run(ctx, "list", func(ctx context.Context) Result {
		admins, err := p.service.GetAllAdminUsers(ctx)
		if err != nil {
			return fromError(err)
		}
		return success("Success", dto.NewAdminUserResponses(admins))
	})
}

func (p *AdminUserPipeline) Get(ctx context.Context, id string) Result {
	return p.runner.run(ctx, "get", func(ctx context.Context) Result {
		admin, err := p.service.GetAdminUserByID(ctx, id)
		if err != nil {
			return fromError(err)
		}
		if admin == nil {
			return fromError(&services.NotFoundError{Entity: "admin user", Key: "adminUserId", ID: id})
		}
		return success("Success", dto.NewAdminUserResponse(admin))
	})
}

func (p *AdminUserPipeline) Create(ctx context.Context, payload []byte) Result {
	return p.runner.run(ctx, "create", func(ctx context.Context) Result {
		var req dto.CreateAdminUserRequest
		if res, ok := decode(payload, &req, "admin user"); !ok {
			return res
		}
		admin, err := p.service.CreateAdminUser(ctx, req)
		if err != nil {
			return fromError(err)
		}
		return created("Admin user created successfully", dto.NewAdminUserResponse(admin))
	})
}

func (p *AdminUserPipeline) Update(ctx context.Context, id string, payload []byte) Result {
	return p.runner.run(ctx, "update", func(ctx context.Context) Result {
		patch, res, ok := decodePatch(payload, dto.AdminUserPatchFields, "admin user")
		if !ok {
			return res
		}
		admin, err := p.service.UpdateAdminUser(ctx, id, patch)
		if err != nil {
			return fromError(err)
		}
		return success("Admin user updated successfully", dto.NewAdminUserResponse(admin))
	})
}

func (p *AdminUserPipeline) Delete(ctx context.Context, id string) Result {
	return p.runner.run(ctx, "delete", func(ctx context.Context) Result {
		admin, err := p.service.DeleteAdminUser(ctx, id)
		if err != nil {
			return fromError(err)
		}
		return success("Admin user deleted successfully", dto.NewAdminUserResponse(admin))
	})
}
