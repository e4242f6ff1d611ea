package interfaces

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// HeaderProcessor rewrites the outgoing metadata of a call made by the client.
// Must not mutate the input headers; return a copy with modifications.
//
// Implemented by helpers.MetadataAugmenter and composed in helpers.HeaderProcessorChain.
// Called before every RPC from the interceptors built by helpers.UnaryClientInterceptor and
// helpers.StreamClientInterceptor.
//
//go:generate moq -stub -out mock/header_processor.go -pkg mock . HeaderProcessor
type HeaderProcessor interface {
	// Process receives the outgoing metadata of the call (nil allowed) and the full method name
	// (e.g. /pkg.Svc/Method). Returns (metadata to send, nil) or (nil, error); the error aborts the call.
	Process(ctx context.Context, headers metadata.MD, method string) (metadata.MD, error)
}
