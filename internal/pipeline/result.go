// Package pipeline runs inbound requests through decode, validation,
// conflict and existence checks and the domain services, and reports each
// outcome as a Result for the transports to render.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"vocabulary/internal/dto"
	"vocabulary/internal/metrics"
	"vocabulary/internal/services"
)

// Kind classifies a pipeline outcome.
type Kind int

const (
	Success Kind = iota
	Created
	BadRequest
	Conflict
	NotFound
	Internal
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Created:
		return "created"
	case BadRequest:
		return "bad_request"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case Internal:
		return "internal"
	}
	return "unknown"
}

// Result is the outcome of one pipeline run. Data is set for Success and
// Created only; Err holds the cause of an Internal result and is never shown
// to callers.
type Result struct {
	Kind    Kind
	Message string
	Data    any
	Err     error
}

// OK reports whether the run succeeded.
func (r Result) OK() bool {
	return r.Kind == Success || r.Kind == Created
}

// Envelope renders the result as the wire response.
func (r Result) Envelope() dto.APIResponse {
	if r.OK() {
		return dto.Success(r.Message, r.Data)
	}
	return dto.Error(r.Message)
}

const internalMessage = "Internal server error"

func success(message string, data any) Result {
	return Result{Kind: Success, Message: message, Data: data}
}

func created(message string, data any) Result {
	return Result{Kind: Created, Message: message, Data: data}
}

// fromError maps a service error onto a Result. Errors the services do not
// type are internal.
func fromError(err error) Result {
	var verr *services.ValidationError
	var conflict *services.ConflictError
	var notFound *services.NotFoundError
	switch {
	case errors.As(err, &verr):
		return Result{Kind: BadRequest, Message: verr.Error()}
	case errors.As(err, &conflict):
		return Result{Kind: Conflict, Message: conflict.Error()}
	case errors.As(err, &notFound):
		return Result{Kind: NotFound, Message: notFound.Error()}
	}
	return Result{Kind: Internal, Message: internalMessage, Err: err}
}

// decode unmarshals a create payload. label names the entity in the message
// for an empty body, e.g. "admin user".
func decode(payload []byte, dst any, label string) (Result, bool) {
	if len(bytes.TrimSpace(payload)) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return Result{Kind: BadRequest, Message: "Invalid " + label + " data"}, false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return Result{Kind: BadRequest, Message: requestMessage(err)}, false
	}
	return Result{}, true
}

func decodePatch(payload []byte, allowed []string, label string) (dto.Patch, Result, bool) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, Result{Kind: BadRequest, Message: "Invalid " + label + " data"}, false
	}
	patch, err := dto.DecodePatch(payload, allowed)
	if err != nil {
		return nil, Result{Kind: BadRequest, Message: requestMessage(err)}, false
	}
	return patch, Result{}, true
}

// requestMessage describes a decode failure without exposing decoder
// internals such as Go type names.
func requestMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Sprintf("Invalid request: field %q has the wrong type", typeErr.Field)
	case errors.As(err, &typeErr):
		return "Invalid request: expected a JSON object"
	case errors.As(err, &syntaxErr):
		return "Invalid request: malformed JSON"
	}
	return "Invalid request: " + err.Error()
}

// runner records and logs every outcome for one entity kind.
type runner struct {
	entity  string
	metrics *metrics.Metrics
}

// run executes fn detached from the caller's cancellation so that store calls
// already issued complete even if the client goes away.
func (r runner) run(ctx context.Context, operation string, fn func(ctx context.Context) Result) Result {
	res := fn(context.WithoutCancel(ctx))
	r.metrics.ObserveResult(r.entity, operation, res.Kind.String())

	switch res.Kind {
	case Internal:
		slog.ErrorContext(ctx, "pipeline failed",
			"entity", r.entity, "operation", operation, "error", res.Err)
	case BadRequest, Conflict, NotFound:
		slog.InfoContext(ctx, "pipeline short-circuited",
			"entity", r.entity, "operation", operation, "result", res.Kind.String(), "message", res.Message)
	}
	return res
}
