package model

import (
	"context"

	"github.com/mizunoe/kaiwa/internal/model/contract"
)

// Provider is a single hosted completion backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req contract.CompletionRequest) (*contract.CompletionResponse, error)
}
