package rest

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/totegamma/music-gateway/internal/present/graph"
	"github.com/totegamma/music-gateway/internal/present/rest/middleware"
	"github.com/totegamma/music-gateway/internal/present/rest/presenter"
	"github.com/totegamma/music-gateway/internal/utils"
)

type Handler struct {
	graph    *graph.Executor
	services *utils.OrderedKVMap[string]
}

// NewHandler serves exec. services maps service names to their base URLs
// and is only reported by the health endpoint.
func NewHandler(exec *graph.Executor, services *utils.OrderedKVMap[string]) *Handler {
	return &Handler{
		graph:    exec,
		services: services,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("", middleware.IdentifyToken)
	g.POST("/graphql", h.handleGraphQL)
	g.GET("/graphql", h.handleGraphQLGet)
	e.GET("/health", h.handleHealth)
}

func (h *Handler) handleGraphQL(c echo.Context) error {
	ctx := c.Request().Context()

	var req graph.Request
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return presenter.BadRequest(c, errors.Wrap(err, "invalid request body"))
	}

	resp := h.graph.Execute(ctx, req, middleware.Token(c))
	if len(resp.Errors) > 0 {
		slog.DebugContext(
			ctx, "graph request finished with errors",
			slog.String("module", "rest"),
			slog.String("operation", req.OperationName),
			slog.Int("errors", len(resp.Errors)),
		)
	}
	return presenter.OK(c, resp)
}

func (h *Handler) handleGraphQLGet(c echo.Context) error {
	ctx := c.Request().Context()

	req := graph.Request{
		Query:         c.QueryParam("query"),
		OperationName: c.QueryParam("operationName"),
		ReadOnly:      true,
	}
	if raw := c.QueryParam("variables"); raw != "" {
		if err := json.NewDecoder(strings.NewReader(raw)).Decode(&req.Variables); err != nil {
			return presenter.BadRequestMessage(c, "variables must be a JSON object")
		}
	}

	return presenter.OK(c, h.graph.Execute(ctx, req, middleware.Token(c)))
}

type healthResponse struct {
	Status       string                      `json:"status"`
	Services     *utils.OrderedKVMap[string] `json:"services"`
	Configured   []string                    `json:"configured"`
	Unconfigured []string                    `json:"unconfigured"`
}

func (h *Handler) handleHealth(c echo.Context) error {
	resp := healthResponse{
		Status:       "ok",
		Services:     utils.NewOrderedKVMap[string](h.services.Len()),
		Configured:   []string{},
		Unconfigured: []string{},
	}
	for _, name := range h.services.Keys() {
		if url, _ := h.services.Get(name); url == "" {
			resp.Services.Set(name, "unconfigured")
			resp.Unconfigured = append(resp.Unconfigured, name)
		} else {
			resp.Services.Set(name, "configured")
			resp.Configured = append(resp.Configured, name)
		}
	}
	return presenter.OK(c, resp)
}
