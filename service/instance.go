package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ansys/pypim/domain"
	"github.com/ansys/pypim/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// Lifecycle is the client-side state of an Instance.
type Lifecycle int

const (
	// LifecycleCreated is the initial state, before the server reported readiness.
	LifecycleCreated Lifecycle = iota
	// LifecycleReady means the server reported ready at least once.
	LifecycleReady
	// LifecycleTimedOut means WaitForReady gave up. The server-side instance is untouched.
	LifecycleTimedOut
	// LifecycleDeleted is terminal.
	LifecycleDeleted
)

// String returns the snake_case name of l, as used in logs.
func (l Lifecycle) String() string {
	switch l {
	case LifecycleCreated:
		return "created"
	case LifecycleReady:
		return "ready"
	case LifecycleTimedOut:
		return "timed_out"
	case LifecycleDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Instance is one remote product instance. It borrows the connection of the Client that created it.
// The caller owns the instance and must eventually call Delete (or use WithInstance).
//
// Accessors read a cache updated by every poll; Ready never goes back to false once observed.
type Instance struct {
	client *Client
	logger log.Logger

	// pollMu pairs each GetInstance with its apply, so a slow older answer never lands after a newer one.
	pollMu sync.Mutex

	mu        sync.Mutex
	state     domain.InstanceState
	lifecycle Lifecycle
}

func newInstance(c *Client, state domain.InstanceState) *Instance {
	i := &Instance{
		client: c,
		logger: log.With(c.opts.logger, "component", "pim_instance", "instance", state.Name),
		state:  state.Clone(),
	}
	if state.Ready {
		i.lifecycle = LifecycleReady
	}
	if state.StatusMessage != "" {
		level.Info(i.logger).Log("msg", state.StatusMessage)
	}
	return i
}

// Name is the server-assigned identity of the instance. It never changes.
func (i *Instance) Name() string {
	return i.state.Name
}

// DefinitionName is the definition the instance was created from.
func (i *Instance) DefinitionName() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state.DefinitionName
}

// Ready reports whether the server has reported the instance ready. It never goes back to false.
func (i *Instance) Ready() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state.Ready
}

// StatusMessage is the last status reported by the server, possibly empty.
func (i *Instance) StatusMessage() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state.StatusMessage
}

// Services returns a copy of the endpoints exposed by the instance. Empty or incomplete until Ready.
func (i *Instance) Services() map[string]domain.Service {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state.Clone().Services
}

// Service returns the endpoint named name, e.g. "http", for callers speaking that protocol themselves.
func (i *Instance) Service(name string) (domain.Service, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	svc, ok := i.state.Services[name]
	if !ok {
		return domain.Service{}, false
	}
	return svc.Clone(), true
}

// State returns a copy of the cached server view.
func (i *Instance) State() domain.InstanceState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state.Clone()
}

// Lifecycle returns the client-side state of the instance.
func (i *Instance) Lifecycle() Lifecycle {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.lifecycle
}

// Update polls the server once and refreshes the cache. Concurrent calls are serialised, so the cache
// always holds the answer of the last completed poll.
//
// Returns: ErrInstanceDeleted after Delete; ErrClientClosed after Client.Close; InstanceNotFound on a
// NotFound status; other transport errors unchanged.
func (i *Instance) Update(ctx context.Context) error {
	if i.Lifecycle() == LifecycleDeleted {
		return ErrInstanceDeleted
	}
	if err := i.client.ensureOpen(); err != nil {
		return err
	}
	i.pollMu.Lock()
	defer i.pollMu.Unlock()
	state, err := i.client.manager.GetInstance(ctx, i.state.Name)
	i.client.opts.metrics.ReadinessPolls.Inc()
	if err != nil {
		return instanceErrorFromGRPC(i.state.Name, err)
	}
	i.apply(state)
	return nil
}

// apply overwrites the cache with a poll result. Ready latches: a not-ready answer after readiness keeps
// the services and only refreshes the status message.
func (i *Instance) apply(state domain.InstanceState) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if state.StatusMessage != "" && state.StatusMessage != i.state.StatusMessage {
		level.Info(i.logger).Log("msg", state.StatusMessage)
	}
	i.state.StatusMessage = state.StatusMessage
	if state.DefinitionName != "" {
		i.state.DefinitionName = state.DefinitionName
	}
	if i.state.Ready && !state.Ready {
		level.Warn(i.logger).Log("msg", "server reported the instance as not ready after readiness, keeping the last services")
		return
	}
	i.state.Ready = state.Ready
	i.state.Services = state.Clone().Services
	if state.Ready && i.lifecycle != LifecycleDeleted {
		i.lifecycle = LifecycleReady
	}
}

// WaitForReady polls the server every pollInterval until it reports the instance ready, or timeout has elapsed.
// Zero values select DefaultReadyTimeout and DefaultPollInterval. The deadline is fixed on entry and the last
// sleep is shortened so the wait never exceeds the deadline by more than one RPC. The wait cannot be cancelled;
// WithRequestTimeout bounds each poll.
//
// Returns: nil when ready; InstanceNotReady carrying the last status message on timeout; the Update error otherwise.
func (i *Instance) WaitForReady(timeout, pollInterval time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	clock := i.client.opts.clock
	start := clock.Now()
	deadline := start.Add(timeout)
	for {
		if err := i.Update(context.Background()); err != nil {
			return err
		}
		if i.Ready() {
			i.client.opts.metrics.ReadinessWait.Observe(clock.Now().Sub(start).Seconds())
			return nil
		}
		now := clock.Now()
		if !now.Before(deadline) {
			i.mu.Lock()
			i.lifecycle = LifecycleTimedOut
			statusMessage := i.state.StatusMessage
			i.mu.Unlock()
			i.client.opts.metrics.ReadinessTimeouts.Inc()
			level.Warn(i.logger).Log("msg", "instance not ready before timeout", "timeout", timeout, "status", statusMessage)
			return domain.NewInstanceNotReadyError(i.state.Name, statusMessage)
		}
		clock.Sleep(min(pollInterval, deadline.Sub(now)))
	}
}

// BuildGRPCChannel dials the "grpc" service of the instance. See BuildGRPCChannelFor.
func (i *Instance) BuildGRPCChannel(opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	return i.BuildGRPCChannelFor(domain.ServiceGRPC, opts...)
}

// BuildGRPCChannelFor dials the service serviceName of the instance. The connection is independent from the
// PIM connection and owned by the caller. Defaults (insecure transport, service headers on every call) come
// first, then opts, so caller options override the transport and add to the interceptor chain.
//
// Returns: UnsupportedService when the instance does not expose serviceName, which is the case until ready.
func (i *Instance) BuildGRPCChannelFor(serviceName string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	helpers.StrPanic(serviceName, "service.instance.go: serviceName is required")
	svc, ok := i.Service(serviceName)
	if !ok {
		return nil, domain.NewUnsupportedServiceError(i.state.Name, serviceName)
	}
	augmenter := helpers.NewMetadataAugmenter(svc.Headers)
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, augmenter.DialOptions()...)
	dialOpts = append(dialOpts, opts...)
	level.Debug(i.logger).Log("msg", "building grpc channel", "service", serviceName, "uri", svc.URI)
	return grpc.NewClient(svc.URI, dialOpts...)
}

// Delete asks the server to remove the instance. After a successful call the instance is unusable and
// further calls return nil without any RPC.
//
// Returns: InstanceNotFound when the server no longer knows the instance (the instance is then marked
// deleted too); ErrClientClosed after Client.Close; other transport errors unchanged.
func (i *Instance) Delete(ctx context.Context) error {
	if i.Lifecycle() == LifecycleDeleted {
		return nil
	}
	if err := i.client.ensureOpen(); err != nil {
		return err
	}
	level.Info(i.logger).Log("msg", "deleting instance")
	err := i.client.manager.DeleteInstance(ctx, i.state.Name)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	i.mu.Lock()
	i.lifecycle = LifecycleDeleted
	i.mu.Unlock()
	if err != nil {
		return instanceErrorFromGRPC(i.state.Name, err)
	}
	i.client.opts.metrics.InstancesDeleted.Inc()
	return nil
}

// WithInstance creates an instance of productName (and productVersion when set), runs fn and always deletes it,
// exactly once, even when fn fails or the instance never became ready. The deletion survives ctx cancellation.
// fn's error is joined with the deletion error.
func WithInstance(ctx context.Context, c *Client, productName, productVersion string, fn func(*Instance) error) (err error) {
	inst, err := c.CreateInstance(ctx, productName, productVersion)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, inst.Delete(context.WithoutCancel(ctx)))
	}()
	return fn(inst)
}
