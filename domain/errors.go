package domain

import (
	"errors"
	"fmt"
)

// Error codes of the PIM client taxonomy. Transport failures never carry one of these codes.
const (
	ErrNotConfigured        = "not_configured"
	ErrInvalidConfiguration = "invalid_configuration"
	ErrUnsupportedProduct   = "unsupported_product"
	ErrInstanceNotReady     = "instance_not_ready"
	ErrUnsupportedService   = "unsupported_service"
	ErrInstanceNotFound     = "instance_not_found"
)

// PIMError is the typed failure shared by every component of the client.
type PIMError struct {
	// Code is one of the Err* constants.
	Code string
	// Message is a human-readable message.
	Message string
	// Subject names what failed: configuration path, instance name or product.
	Subject string
	// StatusMessage is the last status message reported by the server (InstanceNotReady only).
	StatusMessage string
	// Inner is the wrapped cause, reachable through errors.Unwrap.
	Inner error
}

func (e PIMError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e PIMError) Unwrap() error { return e.Inner }

// NewNotConfiguredError reports that no configuration source exists.
func NewNotConfiguredError(message string, inner error) PIMError {
	return PIMError{Code: ErrNotConfigured, Message: message, Inner: inner}
}

func IsNotConfigured(err error) bool {
	return hasCode(err, ErrNotConfigured)
}

// NewInvalidConfigurationError reports that the configuration at path exists but cannot be used.
func NewInvalidConfigurationError(path string, message string, inner error) PIMError {
	return PIMError{
		Code:    ErrInvalidConfiguration,
		Message: fmt.Sprintf("%s is invalid: %s", path, message),
		Subject: path,
		Inner:   inner,
	}
}

func IsInvalidConfiguration(err error) bool {
	return hasCode(err, ErrInvalidConfiguration)
}

// NewUnsupportedProductError reports that no definition matches the product (and version, when set).
func NewUnsupportedProductError(productName, productVersion string) PIMError {
	msg := fmt.Sprintf("the remote server does not support %s", productName)
	if productVersion != "" {
		msg = fmt.Sprintf("the remote server does not support %s in version %s", productName, productVersion)
	}
	return PIMError{Code: ErrUnsupportedProduct, Message: msg, Subject: productName}
}

func IsUnsupportedProduct(err error) bool {
	return hasCode(err, ErrUnsupportedProduct)
}

// NewInstanceNotReadyError reports that instanceName did not become ready; statusMessage is the last one observed.
func NewInstanceNotReadyError(instanceName, statusMessage string) PIMError {
	msg := fmt.Sprintf("%s is not ready", instanceName)
	if statusMessage != "" {
		msg = fmt.Sprintf("%s is not ready: %s", instanceName, statusMessage)
	}
	return PIMError{
		Code:          ErrInstanceNotReady,
		Message:       msg,
		Subject:       instanceName,
		StatusMessage: statusMessage,
	}
}

func IsInstanceNotReady(err error) bool {
	return hasCode(err, ErrInstanceNotReady)
}

// NewUnsupportedServiceError reports that instanceName exposes no service named serviceName.
func NewUnsupportedServiceError(instanceName, serviceName string) PIMError {
	return PIMError{
		Code:    ErrUnsupportedService,
		Message: fmt.Sprintf("%s does not support the service %q", instanceName, serviceName),
		Subject: instanceName,
	}
}

func IsUnsupportedService(err error) bool {
	return hasCode(err, ErrUnsupportedService)
}

// NewInstanceNotFoundError reports that the server no longer knows instanceName.
// inner is the native gRPC status error and stays reachable through Unwrap.
func NewInstanceNotFoundError(instanceName string, inner error) PIMError {
	return PIMError{
		Code:    ErrInstanceNotFound,
		Message: fmt.Sprintf("the instance %s does not exist", instanceName),
		Subject: instanceName,
		Inner:   inner,
	}
}

func IsInstanceNotFound(err error) bool {
	return hasCode(err, ErrInstanceNotFound)
}

// ToPIMError returns the PIMError in err's chain, or nil.
func ToPIMError(err error) *PIMError {
	var e PIMError
	if errors.As(err, &e) {
		return &e
	}
	return nil
}

func hasCode(err error, code string) bool {
	e := ToPIMError(err)
	return e != nil && e.Code == code
}
