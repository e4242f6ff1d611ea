package interfaces

import (
	"context"

	"github.com/ansys/pypim/domain"
)

// InstanceManager is the typed view of the remote ProductInstanceManager service.
// Errors are native gRPC status errors; callers map codes.NotFound where it matters.
//
// Implemented by adapters.InstanceManagerGRPC. Used by service.Client and service.Instance.
//
//go:generate moq -stub -out mock/instance_manager.go -pkg mock . InstanceManager
type InstanceManager interface {
	// ListDefinitions returns definitions matching productName and productVersion; an empty filter matches all.
	ListDefinitions(ctx context.Context, productName, productVersion string) ([]domain.Definition, error)
	// CreateInstance asks the server to start an instance of definitionName and returns its first state.
	CreateInstance(ctx context.Context, definitionName string) (domain.InstanceState, error)
	// GetInstance returns the current state of the named instance.
	GetInstance(ctx context.Context, name string) (domain.InstanceState, error)
	// DeleteInstance asks the server to stop and remove the named instance.
	DeleteInstance(ctx context.Context, name string) error
	// ListInstances returns every instance visible to the caller.
	ListInstances(ctx context.Context) ([]domain.InstanceState, error)
}
