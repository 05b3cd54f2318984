package controllers

import (
	"context"
	"errors"
	"strings"

	"github.com/nlwcopa/bolao-web/models"
)

var ErrEmptyTitle = errors.New("pool title is required")

type PoolCreator interface {
	CreatePool(ctx context.Context, title string) (models.CreatedPool, error)
}

type PoolController struct {
	api PoolCreator
}

func NewPoolController(api PoolCreator) *PoolController {
	return &PoolController{api: api}
}

// CreatePool issues exactly one creation call. The title is sent as typed;
// only a blank title is rejected locally.
func (c *PoolController) CreatePool(ctx context.Context, title string) (*models.CreatedPool, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	created, err := c.api.CreatePool(ctx, title)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
