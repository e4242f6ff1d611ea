// Package pimtest runs an in-memory ProductInstanceManager service for tests.
//
// The same listener also answers any unknown method with an echo, so the services it hands out
// point back at it and a test can dial an instance and observe the metadata it receives.
package pimtest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/ansys/pypim/adapters/pimv1"
	"github.com/ansys/pypim/domain"
	"github.com/ansys/pypim/helpers"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// Status messages reported by the fake server.
const (
	StatusPending = "the instance is starting"
	StatusRunning = "the instance is running"
)

// NeverReady keeps instances pending forever when passed to WithReadyAfter.
const NeverReady = -1

// Option configures a Server.
type Option func(*Server)

// WithDefinitions replaces the default definition list.
func WithDefinitions(defs ...domain.Definition) Option {
	return func(s *Server) { s.definitions = defs }
}

// WithReadyAfter makes an instance ready on its polls-th GetInstance. 0 creates instances ready.
func WithReadyAfter(polls int) Option {
	return func(s *Server) { s.readyAfter = polls }
}

// WithServices sets the services of ready instances. By default each instance exposes "grpc" on the server itself
// with the header instance-name set to its name.
func WithServices(services map[string]domain.Service) Option {
	return func(s *Server) { s.services = services }
}

// WithTLS serves over TLS with a self-signed certificate for 127.0.0.1. Clients trust it through CertPool.
// Instance services still point at the server, so channels built for them need the same trust.
func WithTLS() Option {
	return func(s *Server) { s.useTLS = true }
}

type instance struct {
	state pimv1.Instance
	polls int
}

// Server is a fake PIM service. All methods are safe for concurrent use.
type Server struct {
	pimv1.UnimplementedProductInstanceManagerServer

	lis         net.Listener
	srv         *grpc.Server
	definitions []domain.Definition
	readyAfter  int
	services    map[string]domain.Service
	useTLS      bool
	certPool    *x509.CertPool

	mu        sync.Mutex
	instances map[string]*instance
	calls     map[string]int
	metadata  map[string]metadata.MD
	failures  map[string]error
}

// Start listens on 127.0.0.1:0 and serves until the test ends.
func Start(t testing.TB, opts ...Option) *Server {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("pimtest: listen: %v", err)
	}
	s := &Server{
		lis: lis,
		definitions: []domain.Definition{{
			Name:                  "definitions/mapdl-221",
			ProductName:           "mapdl",
			ProductVersion:        "221",
			AvailableServiceNames: []string{domain.ServiceGRPC},
		}},
		readyAfter: 1,
		instances:  map[string]*instance{},
		calls:      map[string]int{},
		metadata:   map[string]metadata.MD{},
		failures:   map[string]error{},
	}
	for _, opt := range opts {
		opt(s)
	}
	serverOpts := []grpc.ServerOption{
		grpc.UnaryInterceptor(s.record),
		grpc.UnknownServiceHandler(s.echo),
	}
	if s.useTLS {
		cert, pool, err := selfSignedCertificate()
		if err != nil {
			_ = lis.Close()
			t.Fatalf("pimtest: certificate: %v", err)
		}
		s.certPool = pool
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(&tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})))
	}
	s.srv = grpc.NewServer(serverOpts...)
	pimv1.RegisterProductInstanceManagerServer(s.srv, s)
	go func() { _ = s.srv.Serve(lis) }()
	t.Cleanup(s.Close)
	return s
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string { return s.lis.Addr().String() }

// CertPool trusts the server certificate. Nil unless the server was started WithTLS.
func (s *Server) CertPool() *x509.CertPool { return s.certPool }

// Close stops the server. Safe to call more than once.
func (s *Server) Close() { s.srv.Stop() }

// Calls returns how many times fullMethod was called.
func (s *Server) Calls(fullMethod string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[fullMethod]
}

// LastMetadata returns the incoming metadata of the last call to fullMethod.
func (s *Server) LastMetadata(fullMethod string) metadata.MD {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metadata[fullMethod].Copy()
}

// LastBearerToken returns the bearer token sent with the last call to fullMethod.
// Returns ("", false) when the call carried no authorization entry, several of them, or not a bearer token.
func (s *Server) LastBearerToken(fullMethod string) (string, bool) {
	return helpers.BearerFromMetadata(s.LastMetadata(fullMethod))
}

// FailNext makes the next call to fullMethod fail with err.
func (s *Server) FailNext(fullMethod string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[fullMethod] = err
}

// SetState overrides readiness and status of an instance. Returns false when name is unknown.
func (s *Server) SetState(name string, ready bool, statusMessage string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[name]
	if !ok {
		return false
	}
	inst.state.Ready = ready
	inst.state.StatusMessage = statusMessage
	return true
}

// InstanceNames returns the names of live instances.
func (s *Server) InstanceNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.instances))
	for name := range s.instances {
		out = append(out, name)
	}
	return out
}

func (s *Server) record(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if err := s.track(ctx, info.FullMethod); err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

func (s *Server) track(ctx context.Context, fullMethod string) error {
	md, _ := metadata.FromIncomingContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[fullMethod]++
	s.metadata[fullMethod] = md.Copy()
	if err, ok := s.failures[fullMethod]; ok {
		delete(s.failures, fullMethod)
		return err
	}
	return nil
}

// echo answers every method outside the PIM service by sending back what it receives.
func (s *Server) echo(_ any, stream grpc.ServerStream) error {
	method, _ := grpc.MethodFromServerStream(stream)
	if err := s.track(stream.Context(), method); err != nil {
		return err
	}
	var msg emptypb.Empty
	if err := stream.RecvMsg(&msg); err != nil {
		return err
	}
	return stream.SendMsg(&msg)
}

func (s *Server) ListDefinitions(_ context.Context, req *pimv1.ListDefinitionsRequest) (*pimv1.ListDefinitionsResponse, error) {
	resp := &pimv1.ListDefinitionsResponse{}
	for _, d := range s.definitions {
		if req.ProductName != "" && d.ProductName != req.ProductName {
			continue
		}
		if req.ProductVersion != "" && d.ProductVersion != req.ProductVersion {
			continue
		}
		resp.Definitions = append(resp.Definitions, pimv1.Definition{
			Name:                  d.Name,
			ProductName:           d.ProductName,
			ProductVersion:        d.ProductVersion,
			AvailableServiceNames: d.AvailableServiceNames,
		})
	}
	return resp, nil
}

func (s *Server) CreateInstance(_ context.Context, req *pimv1.CreateInstanceRequest) (*pimv1.Instance, error) {
	var def *domain.Definition
	for i := range s.definitions {
		if s.definitions[i].Name == req.Instance.DefinitionName {
			def = &s.definitions[i]
		}
	}
	if def == nil {
		return nil, status.Errorf(codes.InvalidArgument, "unknown definition %q", req.Instance.DefinitionName)
	}
	name := domain.InstanceNamePrefix + def.ProductName + "-" + uuid.NewString()
	inst := &instance{state: pimv1.Instance{
		Name:           name,
		DefinitionName: def.Name,
		StatusMessage:  StatusPending,
	}}
	if s.readyAfter == 0 {
		s.markReady(inst)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances[name] = inst
	return cloneInstance(inst.state), nil
}

func (s *Server) GetInstance(_ context.Context, req *pimv1.GetInstanceRequest) (*pimv1.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[req.Name]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "instance %s not found", req.Name)
	}
	inst.polls++
	if !inst.state.Ready && s.readyAfter != NeverReady && inst.polls >= s.readyAfter {
		s.markReady(inst)
	}
	return cloneInstance(inst.state), nil
}

func (s *Server) DeleteInstance(_ context.Context, req *pimv1.DeleteInstanceRequest) (*pimv1.Empty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.instances[req.Name]; !ok {
		return nil, status.Errorf(codes.NotFound, "instance %s not found", req.Name)
	}
	delete(s.instances, req.Name)
	return &pimv1.Empty{}, nil
}

func (s *Server) ListInstances(_ context.Context, _ *pimv1.ListInstancesRequest) (*pimv1.ListInstancesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp := &pimv1.ListInstancesResponse{}
	for _, inst := range s.instances {
		resp.Instances = append(resp.Instances, *cloneInstance(inst.state))
	}
	return resp, nil
}

func (s *Server) markReady(inst *instance) {
	inst.state.Ready = true
	inst.state.StatusMessage = StatusRunning
	inst.state.Services = map[string]pimv1.Service{}
	if s.services == nil {
		inst.state.Services[domain.ServiceGRPC] = pimv1.Service{
			URI:     s.Addr(),
			Headers: map[string]string{"instance-name": strings.TrimPrefix(inst.state.Name, domain.InstanceNamePrefix)},
		}
		return
	}
	for name, svc := range s.services {
		inst.state.Services[name] = pimv1.Service{URI: svc.URI, Headers: svc.Headers}
	}
}

func cloneInstance(in pimv1.Instance) *pimv1.Instance {
	out := in
	out.Services = make(map[string]pimv1.Service, len(in.Services))
	for k, v := range in.Services {
		headers := make(map[string]string, len(v.Headers))
		for hk, hv := range v.Headers {
			headers[hk] = hv
		}
		out.Services[k] = pimv1.Service{URI: v.URI, Headers: headers}
	}
	return &out
}
