package service

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/ansys/pypim/domain"

	"google.golang.org/grpc/resolver"
)

// validateTarget rejects PIM URIs that grpc.NewClient accepts lazily but that can never connect.
// The target is read the way gRPC reads it: a scheme only counts when a resolver is registered for it,
// otherwise the whole URI is a host:port for the default dns resolver.
//
// Returns: nil when usable; InvalidConfiguration for pim.uri otherwise.
//
// Called from ConnectWithConfiguration before dialing.
func validateTarget(uri string) error {
	scheme, endpoint := "", uri
	if u, err := url.Parse(uri); err == nil && u.Scheme != "" && resolver.Get(u.Scheme) != nil {
		scheme = u.Scheme
		endpoint = u.Opaque
		if endpoint == "" {
			endpoint = strings.TrimPrefix(u.Path, "/")
		}
	}
	switch scheme {
	case "", "dns", "passthrough":
		if err := validateHostPort(endpoint); err != nil {
			return domain.NewInvalidConfigurationError("pim.uri", fmt.Sprintf("%q is not a usable grpc target", uri), err)
		}
	default:
		if endpoint == "" {
			return domain.NewInvalidConfigurationError("pim.uri", fmt.Sprintf("%q has no endpoint", uri), nil)
		}
	}
	return nil
}

func validateHostPort(endpoint string) error {
	_, port, err := net.SplitHostPort(endpoint)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port %q must be a number between 1 and 65535", port)
	}
	return nil
}
