package helpers

import (
	"maps"
	"slices"
	"strings"

	"google.golang.org/grpc/metadata"
)

// HeaderAuthorization is the metadata key carrying the bearer token of the PIM configuration.
const HeaderAuthorization = "authorization"

// BearerPrefix starts every authorization value accepted in a TLS configuration.
const BearerPrefix = "Bearer "

// MergeHeaders returns the union of layers with lowercased keys; on collision the later layer wins.
// gRPC metadata keys are case-insensitive, so "A" in one layer and "a" in the next collide.
// Inside one layer, keys are visited in sorted order: of "X-Tenant" and "x-tenant", the lowercase one wins.
//
// Returns a non-nil map, even with no layers.
func MergeHeaders(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for _, k := range slices.Sorted(maps.Keys(layer)) {
			out[strings.ToLower(k)] = layer[k]
		}
	}
	return out
}

// BearerToken extracts the token from an authorization value of the form "Bearer <token>".
// Returns ("", false) when the prefix is missing or the token is empty.
func BearerToken(value string) (string, bool) {
	if !strings.HasPrefix(value, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(value, BearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}

// BearerFromMetadata returns the token of the single authorization entry of md.
//
// Returns ("", false) when md carries no authorization entry, more than one, or a value that is not a bearer token.
//
// Called from pimtest to check the per-RPC credentials of secure connections.
func BearerFromMetadata(md metadata.MD) (string, bool) {
	vals := md.Get(HeaderAuthorization)
	if len(vals) != 1 {
		return "", false
	}
	return BearerToken(vals[0])
}
