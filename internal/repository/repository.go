package repository

import (
	"context"

	"mepgraphs/internal/domain"
)

// ParameterStore persists exported graphs into named element parameters
type ParameterStore interface {
	// Definition returns the definition bound to scope, or nil when none exists
	Definition(ctx context.Context, scope domain.StorageScope, name string) (*domain.ParameterDefinition, error)
	CreateDefinition(ctx context.Context, scope domain.StorageScope, name string) (*domain.ParameterDefinition, error)

	// SetValue stores value on an element under the definition's name
	SetValue(ctx context.Context, def *domain.ParameterDefinition, elementID, value, runID string) error
	// GetValue returns nil when the element has no value for name
	GetValue(ctx context.Context, name, elementID string) (*domain.ParameterValue, error)

	Close() error
}

// RunRecorder records export runs. Stores may implement it optionally.
type RunRecorder interface {
	StartRun(ctx context.Context, title string) (*domain.ExportRun, error)
	FinishRun(ctx context.Context, run *domain.ExportRun) error
}
