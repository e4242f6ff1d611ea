package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIMError_Predicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   func(error) bool
		code string
	}{
		{name: "not_configured", err: NewNotConfiguredError("no config", nil), is: IsNotConfigured, code: ErrNotConfigured},
		{name: "invalid_configuration", err: NewInvalidConfigurationError("/tmp/c.json", "bad", nil), is: IsInvalidConfiguration, code: ErrInvalidConfiguration},
		{name: "unsupported_product", err: NewUnsupportedProductError("mapdl", "221"), is: IsUnsupportedProduct, code: ErrUnsupportedProduct},
		{name: "instance_not_ready", err: NewInstanceNotReadyError("instances/a", "starting"), is: IsInstanceNotReady, code: ErrInstanceNotReady},
		{name: "unsupported_service", err: NewUnsupportedServiceError("instances/a", "grpc"), is: IsUnsupportedService, code: ErrUnsupportedService},
		{name: "instance_not_found", err: NewInstanceNotFoundError("instances/a", nil), is: IsInstanceNotFound, code: ErrInstanceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.is(tt.err))
			assert.True(t, tt.is(fmt.Errorf("wrapped: %w", tt.err)))
			pe := ToPIMError(tt.err)
			require.NotNil(t, pe)
			assert.Equal(t, tt.code, pe.Code)
		})
	}
}

func TestPIMError_PredicatesRejectOtherErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.False(t, IsNotConfigured(plain))
	assert.False(t, IsInstanceNotFound(nil))
	assert.False(t, IsUnsupportedService(NewInstanceNotFoundError("instances/a", nil)))
	assert.Nil(t, ToPIMError(plain))
}

func TestPIMError_UnwrapKeepsInner(t *testing.T) {
	inner := errors.New("rpc error: code = NotFound")
	err := NewInstanceNotFoundError("instances/a", inner)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "instance_not_found: the instance instances/a does not exist: rpc error: code = NotFound", err.Error())
}

func TestPIMError_Messages(t *testing.T) {
	assert.Equal(t, "the remote server does not support mapdl", NewUnsupportedProductError("mapdl", "").Message)
	assert.Equal(t, "the remote server does not support mapdl in version 221", NewUnsupportedProductError("mapdl", "221").Message)
	assert.Equal(t, "/etc/pim.json is invalid: Unsupported version", NewInvalidConfigurationError("/etc/pim.json", "Unsupported version", nil).Message)

	notReady := NewInstanceNotReadyError("instances/a", "pulling image")
	assert.Equal(t, "instances/a is not ready: pulling image", notReady.Message)
	assert.Equal(t, "pulling image", notReady.StatusMessage)
	assert.Equal(t, "instances/a is not ready", NewInstanceNotReadyError("instances/a", "").Message)
}
