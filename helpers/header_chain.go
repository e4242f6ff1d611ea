package helpers

import (
	"context"
	"strconv"

	"github.com/ansys/pypim/interfaces"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// HeaderProcessorChain is a slice of HeaderProcessors run in sequence; each processor receives
// the output metadata of the previous. Chaining a client-level augmenter and then an instance-level
// augmenter yields the union of both with the later keys winning. Implements interfaces.HeaderProcessor.
type HeaderProcessorChain []interfaces.HeaderProcessor

// NewHeaderProcessorChain creates a chain from the given processors. Panics on an empty list or a nil element.
//
// Called from service.ConnectWithConfiguration (configuration headers, then caller headers, then
// WithHeaderProcessors) and from MetadataAugmenter.Wrap when an augmented connection is wrapped again.
func NewHeaderProcessorChain(processors ...interfaces.HeaderProcessor) HeaderProcessorChain {
	if len(processors) == 0 {
		panic("helpers.header_chain.go: processors is required")
	}
	for i, p := range processors {
		if p == nil {
			panic("helpers.header_chain.go: processor at index " + strconv.Itoa(i) + " is required")
		}
	}
	return HeaderProcessorChain(processors)
}

// Process runs all processors in order. Input headers are not mutated. Returns the first processor error.
func (c HeaderProcessorChain) Process(ctx context.Context, headers metadata.MD, method string) (metadata.MD, error) {
	out := headers.Copy()
	for _, p := range c {
		next, err := p.Process(ctx, out, method)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// UnaryClientInterceptor runs p over the outgoing metadata of every unary call.
func UnaryClientInterceptor(p interfaces.HeaderProcessor) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		outCtx, err := outgoingContext(ctx, p, method)
		if err != nil {
			return err
		}
		return invoker(outCtx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor runs p over the outgoing metadata of every stream.
func StreamClientInterceptor(p interfaces.HeaderProcessor) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		outCtx, err := outgoingContext(ctx, p, method)
		if err != nil {
			return nil, err
		}
		return streamer(outCtx, desc, cc, method, opts...)
	}
}

// outgoingContext replaces the outgoing metadata of ctx with the result of p.
// metadata.FromOutgoingContext already folds in pairs added by AppendToOutgoingContext.
func outgoingContext(ctx context.Context, p interfaces.HeaderProcessor, method string) (context.Context, error) {
	md, _ := metadata.FromOutgoingContext(ctx)
	out, err := p.Process(ctx, md, method)
	if err != nil {
		return nil, err
	}
	return metadata.NewOutgoingContext(ctx, out), nil
}
