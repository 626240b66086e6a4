package graphqltransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"

	"catalog/internal/catalog/models"
	"catalog/internal/catalog/service"
)

// Service is the pipeline surface the resolvers invoke. Identical to the
// REST handler's view of the service.
type Service interface {
	Create(ctx context.Context, candidate *models.Item) service.Result
	Update(ctx context.Context, candidate *models.Item, versionToken string) service.Result
	Delete(ctx context.Context, id string) service.Result
	FindByID(ctx context.Context, id string) (*models.Item, error)
	Find(ctx context.Context, filter models.Filter) ([]*models.Item, error)
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler serves GraphQL over a single POST endpoint.
type Handler struct {
	schema graphql.Schema
	logger *slog.Logger
}

func NewHandler(svc Service, logger *slog.Logger) (*Handler, error) {
	schema, err := NewSchema(svc)
	if err != nil {
		return nil, err
	}
	return &Handler{schema: schema, logger: logger}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"errors":[{"message":"invalid request body"}]}`, http.StatusBadRequest)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})
	if result.HasErrors() {
		h.logger.DebugContext(r.Context(), "graphql request returned errors",
			"operation", req.OperationName,
			"errors", len(result.Errors))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode graphql response", "error", err)
	}
}
