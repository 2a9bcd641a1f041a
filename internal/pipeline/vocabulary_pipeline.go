package pipeline

import (
	"context"

	"vocabulary/internal/dto"
	"vocabulary/internal/metrics"
	"vocabulary/internal/services"
)

// VocabularyPipeline serves vocabulary requests.
type VocabularyPipeline struct {
	service *services.VocabularyService
	runner  runner
}

func NewVocabularyPipeline(service *services.VocabularyService, m *metrics.Metrics) *VocabularyPipeline {
	return &VocabularyPipeline{
		service: service,
		runner:  runner{entity: "vocabulary", metrics: m},
	}
}

func (p *VocabularyPipeline) List(ctx context.Context) Result {
	return p.runner.run(ctx, "list", func(ctx context.Context) Result {
		entries, err := p.service.GetAllVocabularies(ctx)
		if err != nil {
			return fromError(err)
		}
		return success("Success", dto.NewVocabularyResponses(entries))
	})
}

// ListByUser lists the entries of one user. An unknown user simply has none.
func (p *VocabularyPipeline) ListByUser(ctx context.Context, userID string) Result {
	return p.runner.run(ctx, "list_by_user", func(ctx context.Context) Result {
		entries, err := p.service.GetVocabulariesByUserID(ctx, userID)
		if err != nil {
			return fromError(err)
		}
		return success("Success", dto.NewVocabularyResponses(entries))
	})
}

func (p *VocabularyPipeline) Get(ctx context.Context, id string) Result {
	return p.runner.run(ctx, "get", func(ctx context.Context) Result {
		entry, err := p.service.GetVocabularyByID(ctx, id)
		if err != nil {
			return fromError(err)
		}
		if entry == nil {
			return fromError(&services.NotFoundError{Entity: "vocabulary", Key: "vocabularyId", ID: id})
		}
		return success("Success", dto.NewVocabularyResponse(entry))
	})
}

func (p *VocabularyPipeline) Create(ctx context.Context, payload []byte) Result {
	return p.runner.run(ctx, "create", func(ctx context.Context) Result {
		var req dto.CreateVocabularyRequest
		if res, ok := decode(payload, &req, "vocabulary"); !ok {
			return res
		}
		entry, err := p.service.CreateVocabulary(ctx, req)
		if err != nil {
			return fromError(err)
		}
		return created("Vocabulary added successfully", dto.NewVocabularyResponse(entry))
	})
}

func (p *VocabularyPipeline) Update(ctx context.Context, id string, payload []byte) Result {
	return p.runner.run(ctx, "update", func(ctx context.Context) Result {
		patch, res, ok := decodePatch(payload, dto.VocabularyPatchFields, "vocabulary")
		if !ok {
			return res
		}
		entry, err := p.service.UpdateVocabulary(ctx, id, patch)
		if err != nil {
			return fromError(err)
		}
		return success("Vocabulary updated successfully", dto.NewVocabularyResponse(entry))
	})
}

func (p *VocabularyPipeline) Delete(ctx context.Context, id string) Result {
	return p.runner.run(ctx, "delete", func(ctx context.Context) Result {
		entry, err := p.service.DeleteVocabulary(ctx, id)
		if err != nil {
			return fromError(err)
		}
		return success("Vocabulary deleted successfully", dto.NewVocabularyResponse(entry))
	})
}
