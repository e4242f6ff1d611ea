package service

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ansys/pypim/adapters"
	"github.com/ansys/pypim/domain"
	"github.com/ansys/pypim/helpers"
	"github.com/ansys/pypim/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/oauth2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/credentials/oauth"
)

// Client owns one connection to the PIM service, shared by every Instance it creates.
// Instances borrow the connection: once the Client is closed their RPCs fail with ErrClientClosed.
type Client struct {
	manager interfaces.InstanceManager
	closer  io.Closer
	opts    options
	logger  log.Logger

	createMu sync.Mutex

	mu     sync.Mutex
	closed bool
}

// EnvConfigResolver returns the resolver reading ANSYS_PLATFORM_INSTANCEMANAGEMENT_CONFIG from the process environment.
func EnvConfigResolver(logger log.Logger) interfaces.ConfigResolver {
	return adapters.NewEnvConfigResolver(os.LookupEnv, logger)
}

// IsConfigured reports whether the process environment points at a valid PIM configuration.
func IsConfigured() bool {
	return EnvConfigResolver(log.NewNopLogger()).IsConfigured()
}

// ConnectFromEnv connects with the configuration named by the process environment.
func ConnectFromEnv(extraHeaders map[string]string, opts ...Option) (*Client, error) {
	return Connect(EnvConfigResolver(newOptions(opts).logger), extraHeaders, opts...)
}

// Connect resolves the configuration with resolver and connects to the PIM service.
//
// Parameters: resolver - configuration source (panics on nil); extraHeaders - headers added to every
// PIM call, winning over the configuration headers on key collision; opts - client options.
//
// Returns: (*Client, nil) or the NotConfigured / InvalidConfiguration error of the resolver.
func Connect(resolver interfaces.ConfigResolver, extraHeaders map[string]string, opts ...Option) (*Client, error) {
	cfg, err := helpers.NilPanic(resolver, "service.client.go: resolver is required").Resolve()
	if err != nil {
		return nil, err
	}
	return ConnectWithConfiguration(cfg, extraHeaders, opts...)
}

// ConnectWithConfiguration dials cfg.URI. The transport is TLS with the access token as per-RPC bearer
// credentials when cfg.TLS is set, insecure otherwise. Every call carries cfg.Headers merged with extraHeaders,
// then the output of WithHeaderProcessors.
//
// Returns: InvalidConfiguration when the URI is empty or cannot be used as a gRPC target (unparsable
// host:port, port out of range, registered scheme without endpoint). The check runs before dialing, so no
// configuration error surfaces on a later RPC.
func ConnectWithConfiguration(cfg domain.Configuration, extraHeaders map[string]string, opts ...Option) (*Client, error) {
	o := newOptions(opts)
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, domain.NewInvalidConfigurationError("pim.uri", "the uri is empty", nil)
	}
	if err := validateTarget(cfg.URI); err != nil {
		return nil, err
	}

	processors := append([]interfaces.HeaderProcessor{
		helpers.NewMetadataAugmenter(cfg.Headers).Then(extraHeaders),
	}, o.headerProcessors...)
	chain := helpers.NewHeaderProcessorChain(processors...)

	dialOpts := []grpc.DialOption{
		grpc.WithChainUnaryInterceptor(helpers.UnaryClientInterceptor(chain)),
		grpc.WithChainStreamInterceptor(helpers.StreamClientInterceptor(chain)),
	}
	if cfg.TLS {
		dialOpts = append(dialOpts,
			grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})),
			grpc.WithPerRPCCredentials(oauth.TokenSource{
				TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"}),
			}),
		)
	} else {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	dialOpts = append(dialOpts, o.dialOptions...)

	conn, err := grpc.NewClient(cfg.URI, dialOpts...)
	if err != nil {
		return nil, domain.NewInvalidConfigurationError("pim.uri", "cannot connect to "+cfg.URI, err)
	}
	c := newClient(adapters.NewInstanceManagerGRPC(conn, o.requestTimeout), conn, o)
	level.Info(c.logger).Log("msg", "connecting", "uri", cfg.URI, "tls", cfg.TLS)
	return c, nil
}

// NewClient wraps a connection built by the caller. Close closes cc when it implements io.Closer
// (a *grpc.ClientConn does). Panics on nil cc.
func NewClient(cc grpc.ClientConnInterface, opts ...Option) *Client {
	o := newOptions(opts)
	helpers.NilPanic(cc, "service.client.go: cc is required")
	closer, _ := cc.(io.Closer)
	return newClient(adapters.NewInstanceManagerGRPC(cc, o.requestTimeout), closer, o)
}

// NewClientWithManager builds a Client on any InstanceManager implementation. Close releases nothing. Panics on nil manager.
func NewClientWithManager(manager interfaces.InstanceManager, opts ...Option) *Client {
	return newClient(helpers.NilPanic(manager, "service.client.go: manager is required"), nil, newOptions(opts))
}

func newClient(manager interfaces.InstanceManager, closer io.Closer, o options) *Client {
	return &Client{
		manager: manager,
		closer:  closer,
		opts:    o,
		logger:  log.With(o.logger, "component", "pim_client"),
	}
}

// WithClient connects, runs fn and always closes the client. fn's error is joined with the close error.
func WithClient(resolver interfaces.ConfigResolver, extraHeaders map[string]string, fn func(*Client) error, opts ...Option) (err error) {
	c, err := Connect(resolver, extraHeaders, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, c.Close())
	}()
	return fn(c)
}

// Close releases the connection. Later calls are no-ops returning nil.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	level.Info(c.logger).Log("msg", "closing")
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *Client) ensureOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// ListDefinitions returns the definitions matching productName and productVersion; empty values match all.
func (c *Client) ListDefinitions(ctx context.Context, productName, productVersion string) ([]domain.Definition, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	level.Debug(c.logger).Log("msg", "listing definitions", "product", productName, "version", productVersion)
	return c.manager.ListDefinitions(ctx, productName, productVersion)
}

// ListInstances returns every instance visible to the caller, including ones created by other clients.
func (c *Client) ListInstances(ctx context.Context) ([]*Instance, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	level.Debug(c.logger).Log("msg", "listing instances")
	states, err := c.manager.ListInstances(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Instance, 0, len(states))
	for _, s := range states {
		out = append(out, newInstance(c, s))
	}
	return out, nil
}

// GetInstance returns the named instance. A NotFound status becomes InstanceNotFound, still unwrapping to the status.
func (c *Client) GetInstance(ctx context.Context, name string) (*Instance, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	level.Debug(c.logger).Log("msg", "getting instance", "instance", name)
	state, err := c.manager.GetInstance(ctx, name)
	if err != nil {
		return nil, instanceErrorFromGRPC(name, err)
	}
	return newInstance(c, state), nil
}

// CreateInstance starts an instance of productName, optionally pinned to productVersion. The first matching
// definition is used. Calls are serialised per Client. A single CreateInstance RPC is issued, without retry.
//
// Returns: the Instance (usually not ready yet); UnsupportedProduct when no definition matches;
// transport errors unchanged.
func (c *Client) CreateInstance(ctx context.Context, productName, productVersion string) (*Instance, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	c.createMu.Lock()
	defer c.createMu.Unlock()

	level.Debug(c.logger).Log("msg", "creating instance", "product", productName, "version", productVersion)
	defs, err := c.manager.ListDefinitions(ctx, productName, productVersion)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, domain.NewUnsupportedProductError(productName, productVersion)
	}
	return c.createFromDefinition(ctx, defs[0])
}

// CreateInstanceFromDefinition starts an instance of def, as returned by ListDefinitions.
func (c *Client) CreateInstanceFromDefinition(ctx context.Context, def domain.Definition) (*Instance, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	c.createMu.Lock()
	defer c.createMu.Unlock()
	return c.createFromDefinition(ctx, def)
}

func (c *Client) createFromDefinition(ctx context.Context, def domain.Definition) (*Instance, error) {
	state, err := c.manager.CreateInstance(ctx, def.Name)
	if err != nil {
		return nil, err
	}
	c.opts.metrics.InstancesCreated.Inc()
	level.Info(c.logger).Log("msg", "instance created", "instance", state.Name, "definition", def.Name)
	return newInstance(c, state), nil
}
