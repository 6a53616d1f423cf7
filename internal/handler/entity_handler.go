package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/eduverse/portal-api/internal/schema"
	appErrors "github.com/eduverse/portal-api/pkg/errors"
	"github.com/eduverse/portal-api/pkg/response"
)

type entityService[T any] interface {
	Get(ctx context.Context, rawID string) (*T, error)
	List(ctx context.Context, params url.Values) ([]T, error)
	Create(ctx context.Context, payload map[string]interface{}) (*T, error)
	Update(ctx context.Context, rawID string, payload map[string]interface{}) (*T, error)
	Delete(ctx context.Context, rawID string) (*T, error)
}

// EntityHandler exposes the CRUD contract for one entity kind under
// /api/<entity>: GET (?id= or list filters), POST, PUT?id=, DELETE?id=.
type EntityHandler[T any] struct {
	entity  schema.Entity
	service entityService[T]
}

// NewEntityHandler builds a handler for the entity.
func NewEntityHandler[T any](entity schema.Entity, service entityService[T]) *EntityHandler[T] {
	return &EntityHandler[T]{entity: entity, service: service}
}

// Register mounts the handler's routes on the group.
func (h *EntityHandler[T]) Register(rg *gin.RouterGroup) {
	g := rg.Group("/" + h.entity.Name)
	g.GET("", h.Get)
	g.POST("", h.Create)
	g.PUT("", h.Update)
	g.DELETE("", h.Delete)
}

// Get godoc
// @Summary Fetch one record by id, or list records with filters
// @Produce json
// @Param id query string false "Record ID (single fetch)"
// @Param search query string false "Free-text search"
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} object
// @Router /{entity} [get]
func (h *EntityHandler[T]) Get(c *gin.Context) {
	if rawID := c.Query("id"); rawID != "" {
		record, err := h.service.Get(c.Request.Context(), rawID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, record)
		return
	}

	rows, err := h.service.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// Create godoc
// @Summary Create a record
// @Accept json
// @Produce json
// @Success 201 {object} object
// @Failure 400 {object} object
// @Router /{entity} [post]
func (h *EntityHandler[T]) Create(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Partially update a record by id
// @Accept json
// @Produce json
// @Param id query string true "Record ID"
// @Success 200 {object} object
// @Failure 404 {object} object
// @Router /{entity} [put]
func (h *EntityHandler[T]) Update(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.service.Update(c.Request.Context(), c.Query("id"), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Delete godoc
// @Summary Delete a record by id
// @Produce json
// @Param id query string true "Record ID"
// @Success 200 {object} object
// @Failure 404 {object} object
// @Router /{entity} [delete]
func (h *EntityHandler[T]) Delete(c *gin.Context) {
	record, err := h.service.Delete(c.Request.Context(), c.Query("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c, h.entity.Display+" deleted successfully", h.entity.DeleteKey, record)
}

func bindPayload(c *gin.Context) (map[string]interface{}, error) {
	payload := map[string]interface{}{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, appErrors.Wrap(err, "INVALID_BODY", http.StatusBadRequest, "Request body must be a JSON object")
	}
	return payload, nil
}
