package helpers

import (
	"context"

	"github.com/ansys/pypim/interfaces"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// MetadataAugmenter attaches a fixed set of headers to every outgoing call, independent of call-site code.
// The PIM transport may route tenants and instances by header, so the augmentation must be transparent.
// A header set by the augmenter replaces any value the call site put under the same key.
//
// The zero value carries no headers. Safe for concurrent use: the header set never changes after construction.
type MetadataAugmenter struct {
	headers map[string]string
}

// NewMetadataAugmenter builds an augmenter from the union of layers; later layers win on key collision.
// Keys are lowercased.
func NewMetadataAugmenter(layers ...map[string]string) *MetadataAugmenter {
	return &MetadataAugmenter{headers: MergeHeaders(layers...)}
}

// Then returns a new augmenter carrying a's headers overlaid with layer. a is left unchanged.
func (a *MetadataAugmenter) Then(layer map[string]string) *MetadataAugmenter {
	return NewMetadataAugmenter(a.headers, layer)
}

// Headers returns a copy of the headers attached to every call.
func (a *MetadataAugmenter) Headers() map[string]string {
	return MergeHeaders(a.headers)
}

// Process implements interfaces.HeaderProcessor: returns a copy of headers with every augmenter key set.
func (a *MetadataAugmenter) Process(_ context.Context, headers metadata.MD, _ string) (metadata.MD, error) {
	out := headers.Copy()
	for k, v := range a.headers {
		out.Set(k, v)
	}
	return out, nil
}

// Apply returns ctx with the augmenter headers set on its outgoing metadata.
// Used for calls made on a connection that was not dialed with DialOptions.
func (a *MetadataAugmenter) Apply(ctx context.Context) context.Context {
	out, _ := outgoingContext(ctx, a, "")
	return out
}

// DialOptions returns the interceptors that augment every unary and streaming call of a new connection.
func (a *MetadataAugmenter) DialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithChainUnaryInterceptor(UnaryClientInterceptor(a)),
		grpc.WithChainStreamInterceptor(StreamClientInterceptor(a)),
	}
}

// Wrap returns cc augmented with a's headers. Wrapping an already augmented connection composes
// both header sets, with a's keys taking precedence.
func (a *MetadataAugmenter) Wrap(cc grpc.ClientConnInterface) grpc.ClientConnInterface {
	return WrapConn(cc, a)
}

// WrapConn returns cc with p applied to the outgoing metadata of every call.
func WrapConn(cc grpc.ClientConnInterface, p interfaces.HeaderProcessor) grpc.ClientConnInterface {
	if inner, ok := cc.(*augmentedConn); ok {
		return &augmentedConn{cc: inner.cc, processor: NewHeaderProcessorChain(inner.processor, p)}
	}
	return &augmentedConn{cc: NilPanic(cc, "helpers.metadata_augmenter.go: cc is required"), processor: p}
}

// augmentedConn implements grpc.ClientConnInterface on top of another connection.
type augmentedConn struct {
	cc        grpc.ClientConnInterface
	processor interfaces.HeaderProcessor
}

func (c *augmentedConn) Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error {
	outCtx, err := outgoingContext(ctx, c.processor, method)
	if err != nil {
		return err
	}
	return c.cc.Invoke(outCtx, method, args, reply, opts...)
}

func (c *augmentedConn) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	outCtx, err := outgoingContext(ctx, c.processor, method)
	if err != nil {
		return nil, err
	}
	return c.cc.NewStream(outCtx, desc, method, opts...)
}
