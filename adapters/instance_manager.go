package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/ansys/pypim/adapters/pimv1"
	"github.com/ansys/pypim/domain"
	"github.com/ansys/pypim/helpers"
	"github.com/ansys/pypim/interfaces"

	"google.golang.org/grpc"
)

// NewInstanceManagerGRPC creates an interfaces.InstanceManager calling the ProductInstanceManager service over cc.
// Panics on nil cc.
//
// Parameters: cc - connection to the PIM service (already augmented with the client headers);
// requestTimeout - deadline applied to each RPC when positive, zero keeps the caller's context as is.
//
// Returns: *InstanceManagerGRPC.
//
// Called from service.NewClient.
func NewInstanceManagerGRPC(cc grpc.ClientConnInterface, requestTimeout time.Duration) *InstanceManagerGRPC {
	return &InstanceManagerGRPC{
		stub:           pimv1.NewProductInstanceManagerClient(helpers.NilPanic(cc, "adapters.instance_manager.go: cc is required")),
		requestTimeout: requestTimeout,
	}
}

// InstanceManagerGRPC implements interfaces.InstanceManager. Server records are validated before they are
// returned; gRPC status errors are returned untouched.
type InstanceManagerGRPC struct {
	stub           *pimv1.ProductInstanceManagerClient
	requestTimeout time.Duration
}

var _ interfaces.InstanceManager = (*InstanceManagerGRPC)(nil)

func (m *InstanceManagerGRPC) ListDefinitions(ctx context.Context, productName, productVersion string) ([]domain.Definition, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	resp, err := m.stub.ListDefinitions(ctx, &pimv1.ListDefinitionsRequest{ProductName: productName, ProductVersion: productVersion})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Definition, 0, len(resp.Definitions))
	for _, d := range resp.Definitions {
		def := domain.Definition{
			Name:                  d.Name,
			ProductName:           d.ProductName,
			ProductVersion:        d.ProductVersion,
			AvailableServiceNames: d.AvailableServiceNames,
		}
		if err := domain.ValidateDefinition(def); err != nil {
			return nil, fmt.Errorf("invalid definition %q from server: %w", d.Name, err)
		}
		out = append(out, def)
	}
	return out, nil
}

func (m *InstanceManagerGRPC) CreateInstance(ctx context.Context, definitionName string) (domain.InstanceState, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	resp, err := m.stub.CreateInstance(ctx, &pimv1.CreateInstanceRequest{Instance: pimv1.Instance{DefinitionName: definitionName}})
	if err != nil {
		return domain.InstanceState{}, err
	}
	return instanceFromWire(resp)
}

func (m *InstanceManagerGRPC) GetInstance(ctx context.Context, name string) (domain.InstanceState, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	resp, err := m.stub.GetInstance(ctx, &pimv1.GetInstanceRequest{Name: name})
	if err != nil {
		return domain.InstanceState{}, err
	}
	return instanceFromWire(resp)
}

func (m *InstanceManagerGRPC) DeleteInstance(ctx context.Context, name string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	_, err := m.stub.DeleteInstance(ctx, &pimv1.DeleteInstanceRequest{Name: name})
	return err
}

func (m *InstanceManagerGRPC) ListInstances(ctx context.Context) ([]domain.InstanceState, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	resp, err := m.stub.ListInstances(ctx, &pimv1.ListInstancesRequest{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.InstanceState, 0, len(resp.Instances))
	for i := range resp.Instances {
		state, err := instanceFromWire(&resp.Instances[i])
		if err != nil {
			return nil, err
		}
		out = append(out, state)
	}
	return out, nil
}

func (m *InstanceManagerGRPC) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.requestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, m.requestTimeout)
}

func instanceFromWire(in *pimv1.Instance) (domain.InstanceState, error) {
	state := domain.InstanceState{
		Name:           in.Name,
		DefinitionName: in.DefinitionName,
		Ready:          in.Ready,
		StatusMessage:  in.StatusMessage,
		Services:       make(map[string]domain.Service, len(in.Services)),
	}
	for name, svc := range in.Services {
		state.Services[name] = domain.Service{URI: svc.URI, Headers: helpers.MergeHeaders(svc.Headers)}
	}
	if err := domain.ValidateInstanceState(state); err != nil {
		return domain.InstanceState{}, fmt.Errorf("invalid instance %q from server: %w", in.Name, err)
	}
	return state, nil
}
