package service

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ansys/pypim/adapters"
	"github.com/ansys/pypim/adapters/pimv1"
	"github.com/ansys/pypim/domain"
	"github.com/ansys/pypim/interfaces/mock"
	"github.com/ansys/pypim/pimtest"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func connectTo(t *testing.T, s *pimtest.Server, headers, extra map[string]string, opts ...Option) *Client {
	t.Helper()
	c, err := ConnectWithConfiguration(domain.Configuration{Version: 1, URI: s.Addr(), Headers: headers}, extra, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestConnect_HeaderPrecedence(t *testing.T) {
	s := pimtest.Start(t)
	c := connectTo(t, s, map[string]string{"a": "1"}, map[string]string{"a": "2", "b": "3"})

	_, err := c.ListInstances(context.Background())
	require.NoError(t, err)
	md := s.LastMetadata(pimv1.ListInstancesMethod)
	assert.Equal(t, []string{"2"}, md.Get("a"))
	assert.Equal(t, []string{"3"}, md.Get("b"))
}

func TestConnect_HeaderProcessorsRunAfterConfiguredHeaders(t *testing.T) {
	s := pimtest.Start(t)
	proc := &mock.HeaderProcessorMock{
		ProcessFunc: func(ctx context.Context, headers metadata.MD, method string) (metadata.MD, error) {
			out := headers.Copy()
			out.Set("x-seen-tenant", headers.Get("tenant")...)
			return out, nil
		},
	}
	c := connectTo(t, s, map[string]string{"tenant": "acme"}, nil, WithHeaderProcessors(proc))

	_, err := c.ListDefinitions(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"acme"}, s.LastMetadata(pimv1.ListDefinitionsMethod).Get("x-seen-tenant"))
	require.Len(t, proc.ProcessCalls(), 1)
	assert.Equal(t, pimv1.ListDefinitionsMethod, proc.ProcessCalls()[0].Method)
}

func TestConnect_ResolverErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		wantIs func(error) bool
	}{
		{name: "not_configured", err: domain.NewNotConfiguredError("unset", nil), wantIs: domain.IsNotConfigured},
		{name: "invalid_configuration", err: domain.NewInvalidConfigurationError("/etc/pim.json", "invalid json", nil), wantIs: domain.IsInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &mock.ConfigResolverMock{
				ResolveFunc: func() (domain.Configuration, error) { return domain.Configuration{}, tt.err },
			}
			c, err := Connect(resolver, nil)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, tt.wantIs(err))
			assert.Len(t, resolver.ResolveCalls(), 1)
		})
	}
}

func TestConnect_PanicsOnNilResolver(t *testing.T) {
	assert.PanicsWithValue(t, "service.client.go: resolver is required", func() {
		_, _ = Connect(nil, nil)
	})
}

func TestConnectWithConfiguration_EmptyURI(t *testing.T) {
	_, err := ConnectWithConfiguration(domain.Configuration{Version: 1, URI: " "}, nil)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidConfiguration(err))
}

func TestConnectWithConfiguration_ValidatesTarget(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantErr bool
	}{
		{name: "host_port", uri: "127.0.0.1:50051"},
		{name: "hostname_port", uri: "localhost:50051"},
		{name: "ipv6_port", uri: "[::1]:50051"},
		{name: "dns_opaque", uri: "dns:pim.example.com:443"},
		{name: "dns_path", uri: "dns:///pim.example.com:443"},
		{name: "passthrough", uri: "passthrough:///10.0.0.1:50051"},
		{name: "unix_socket", uri: "unix:///tmp/pim.sock"},
		{name: "err_port_not_numeric", uri: "pim.example.com:notaport", wantErr: true},
		{name: "err_dns_port_not_numeric", uri: "dns:///pim.invalid:abc", wantErr: true},
		{name: "err_http_url", uri: "http://pim.example.com:80", wantErr: true},
		{name: "err_port_out_of_range", uri: "127.0.0.1:99999", wantErr: true},
		{name: "err_port_zero", uri: "127.0.0.1:0", wantErr: true},
		{name: "err_missing_port", uri: "pim.example.com", wantErr: true},
		{name: "err_unix_abstract_without_name", uri: "unix-abstract:", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ConnectWithConfiguration(domain.Configuration{Version: 1, URI: tt.uri}, nil)
			if !tt.wantErr {
				require.NoError(t, err)
				require.NoError(t, c.Close())
				return
			}
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, domain.IsInvalidConfiguration(err), "unexpected error: %v", err)
			assert.Equal(t, "pim.uri", domain.ToPIMError(err).Subject)
		})
	}
}

func TestConnectWithConfiguration_TLSIsLazy(t *testing.T) {
	c, err := ConnectWithConfiguration(domain.Configuration{
		Version:     1,
		URI:         "dns:pim.invalid:443",
		Headers:     map[string]string{},
		TLS:         true,
		AccessToken: "token",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, c.Close())
}

func TestConnect_TLSSendsBearerTokenFromConfigurationFile(t *testing.T) {
	s := pimtest.Start(t, pimtest.WithTLS())
	path := filepath.Join(t.TempDir(), "pim.json")
	content := fmt.Sprintf(`{"version": 1, "pim": {"uri": %q, "headers": {"Authorization": "Bearer secret", "x-tenant": "t"}, "tls": true}}`, s.Addr())
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	cfg, err := adapters.LoadConfigurationFile(path)
	require.NoError(t, err)

	trust := grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{RootCAs: s.CertPool(), MinVersion: tls.VersionTLS12}))
	c, err := ConnectWithConfiguration(cfg, nil, WithDialOptions(trust))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, err = c.ListDefinitions(context.Background(), "", "")
	require.NoError(t, err)
	token, ok := s.LastBearerToken(pimv1.ListDefinitionsMethod)
	require.True(t, ok, "expected exactly one bearer authorization entry")
	assert.Equal(t, "secret", token)
	assert.Equal(t, []string{"t"}, s.LastMetadata(pimv1.ListDefinitionsMethod).Get("x-tenant"))
}

func TestConnect_TLSRejectsUntrustedServer(t *testing.T) {
	s := pimtest.Start(t, pimtest.WithTLS())
	c, err := ConnectWithConfiguration(domain.Configuration{Version: 1, URI: s.Addr(), TLS: true, AccessToken: "secret"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, err = c.ListDefinitions(context.Background(), "", "")
	assert.Equal(t, codes.Unavailable, status.Code(err))
	assert.Equal(t, 0, s.Calls(pimv1.ListDefinitionsMethod))
}

func TestClient_CreateInstance(t *testing.T) {
	t.Run("unsupported_product", func(t *testing.T) {
		s := pimtest.Start(t)
		c := connectTo(t, s, nil, nil)
		_, err := c.CreateInstance(context.Background(), "mapdl", "999")
		require.Error(t, err)
		assert.True(t, domain.IsUnsupportedProduct(err))
		assert.Contains(t, err.Error(), "mapdl in version 999")
		assert.Equal(t, 0, s.Calls(pimv1.CreateInstanceMethod))
	})
	t.Run("any_version", func(t *testing.T) {
		s := pimtest.Start(t)
		reg := prometheus.NewRegistry()
		metrics := NewMetrics(reg)
		c := connectTo(t, s, nil, nil, WithMetrics(metrics))
		inst, err := c.CreateInstance(context.Background(), "mapdl", "")
		require.NoError(t, err)
		assert.Equal(t, "definitions/mapdl-221", inst.DefinitionName())
		assert.False(t, inst.Ready())
		assert.Equal(t, LifecycleCreated, inst.Lifecycle())
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.InstancesCreated))
	})
	t.Run("uses_first_definition", func(t *testing.T) {
		manager := &mock.InstanceManagerMock{
			ListDefinitionsFunc: func(ctx context.Context, productName, productVersion string) ([]domain.Definition, error) {
				return []domain.Definition{{Name: "definitions/first"}, {Name: "definitions/second"}}, nil
			},
			CreateInstanceFunc: func(ctx context.Context, definitionName string) (domain.InstanceState, error) {
				return domain.InstanceState{Name: "instances/x", DefinitionName: definitionName}, nil
			},
		}
		c := NewClientWithManager(manager)
		inst, err := c.CreateInstance(context.Background(), "mapdl", "221")
		require.NoError(t, err)
		assert.Equal(t, "instances/x", inst.Name())
		require.Len(t, manager.CreateInstanceCalls(), 1)
		assert.Equal(t, "definitions/first", manager.CreateInstanceCalls()[0].DefinitionName)
		assert.Equal(t, "221", manager.ListDefinitionsCalls()[0].ProductVersion)
	})
	t.Run("transport_error_unchanged", func(t *testing.T) {
		rpcErr := status.Error(codes.Unavailable, "connection refused")
		manager := &mock.InstanceManagerMock{
			ListDefinitionsFunc: func(ctx context.Context, productName, productVersion string) ([]domain.Definition, error) {
				return []domain.Definition{{Name: "definitions/first"}}, nil
			},
			CreateInstanceFunc: func(ctx context.Context, definitionName string) (domain.InstanceState, error) {
				return domain.InstanceState{}, rpcErr
			},
		}
		_, err := NewClientWithManager(manager).CreateInstance(context.Background(), "mapdl", "")
		assert.Equal(t, rpcErr, err)
		assert.Nil(t, domain.ToPIMError(err))
		assert.Len(t, manager.CreateInstanceCalls(), 1)
	})
}

func TestClient_GetInstance(t *testing.T) {
	s := pimtest.Start(t, pimtest.WithReadyAfter(0))
	c := connectTo(t, s, nil, nil)
	created, err := c.CreateInstance(context.Background(), "mapdl", "221")
	require.NoError(t, err)

	got, err := c.GetInstance(context.Background(), created.Name())
	require.NoError(t, err)
	assert.True(t, got.Ready())
	assert.Equal(t, LifecycleReady, got.Lifecycle())

	_, err = c.GetInstance(context.Background(), "instances/missing")
	require.Error(t, err)
	assert.True(t, domain.IsInstanceNotFound(err))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestClient_ListInstances(t *testing.T) {
	s := pimtest.Start(t)
	c := connectTo(t, s, nil, nil)
	a, err := c.CreateInstance(context.Background(), "mapdl", "")
	require.NoError(t, err)
	b, err := c.CreateInstance(context.Background(), "mapdl", "")
	require.NoError(t, err)

	all, err := c.ListInstances(context.Background())
	require.NoError(t, err)
	var names []string
	for _, inst := range all {
		names = append(names, inst.Name())
	}
	assert.ElementsMatch(t, []string{a.Name(), b.Name()}, names)
}

func TestClient_Close(t *testing.T) {
	s := pimtest.Start(t)
	conn, err := grpc.NewClient(s.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	c := NewClient(conn, WithLogger(log.NewNopLogger()))

	inst, err := c.CreateInstance(context.Background(), "mapdl", "")
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err = c.CreateInstance(context.Background(), "mapdl", "")
	assert.ErrorIs(t, err, ErrClientClosed)
	assert.ErrorIs(t, inst.Update(context.Background()), ErrClientClosed)
	assert.ErrorIs(t, inst.Delete(context.Background()), ErrClientClosed)
}

func TestNewClient_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "service.client.go: cc is required", func() {
		NewClient(nil)
	})
	assert.PanicsWithValue(t, "service.client.go: manager is required", func() {
		NewClientWithManager(nil)
	})
}

func TestWithClient_AlwaysCloses(t *testing.T) {
	s := pimtest.Start(t)
	resolver := adapters.NewStaticConfigResolver(domain.Configuration{Version: 1, URI: s.Addr()}, nil)
	bodyErr := errors.New("body failed")

	var captured *Client
	err := WithClient(resolver, nil, func(c *Client) error {
		captured = c
		_, err := c.ListDefinitions(context.Background(), "", "")
		require.NoError(t, err)
		return bodyErr
	})
	assert.ErrorIs(t, err, bodyErr)
	require.NotNil(t, captured)
	_, err = captured.ListDefinitions(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestWithClient_ResolverFailureSkipsBody(t *testing.T) {
	resolver := adapters.NewStaticConfigResolver(domain.Configuration{}, domain.NewNotConfiguredError("unset", nil))
	called := false
	err := WithClient(resolver, nil, func(*Client) error {
		called = true
		return nil
	})
	assert.True(t, domain.IsNotConfigured(err))
	assert.False(t, called)
}

func TestIsConfigured_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv(adapters.EnvConfigPath, "")
	assert.False(t, IsConfigured())
	_, err := ConnectFromEnv(nil)
	assert.True(t, domain.IsNotConfigured(err))
}
