package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// recordingConn captures the outgoing metadata of the last call.
type recordingConn struct {
	md metadata.MD
}

func (r *recordingConn) Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error {
	r.md, _ = metadata.FromOutgoingContext(ctx)
	return nil
}

func (r *recordingConn) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	r.md, _ = metadata.FromOutgoingContext(ctx)
	return nil, nil
}

func TestMetadataAugmenter_HeaderPrecedence(t *testing.T) {
	aug := NewMetadataAugmenter(map[string]string{"a": "1"}, map[string]string{"a": "2", "b": "3"})
	assert.Equal(t, map[string]string{"a": "2", "b": "3"}, aug.Headers())

	out, err := aug.Process(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, metadata.MD{"a": {"2"}, "b": {"3"}}, out)
}

func TestMetadataAugmenter_ThenLeavesReceiverUnchanged(t *testing.T) {
	base := NewMetadataAugmenter(map[string]string{"tenant": "t1"})
	child := base.Then(map[string]string{"tenant": "t2", "instance": "i"})
	assert.Equal(t, map[string]string{"tenant": "t1"}, base.Headers())
	assert.Equal(t, map[string]string{"tenant": "t2", "instance": "i"}, child.Headers())
}

func TestMetadataAugmenter_HeadersReturnsCopy(t *testing.T) {
	aug := NewMetadataAugmenter(map[string]string{"a": "1"})
	h := aug.Headers()
	h["a"] = "changed"
	assert.Equal(t, "1", aug.Headers()["a"])
}

func TestMetadataAugmenter_ApplyReplacesCallSiteValue(t *testing.T) {
	aug := NewMetadataAugmenter(map[string]string{"a": "aug"})
	ctx := metadata.AppendToOutgoingContext(context.Background(), "a", "caller", "keep", "k")
	md, ok := metadata.FromOutgoingContext(aug.Apply(ctx))
	require.True(t, ok)
	assert.Equal(t, []string{"aug"}, md.Get("a"))
	assert.Equal(t, []string{"k"}, md.Get("keep"))
}

func TestMetadataAugmenter_WrapComposes(t *testing.T) {
	rec := &recordingConn{}
	client := NewMetadataAugmenter(map[string]string{"a": "client", "tenant": "t"})
	instance := NewMetadataAugmenter(map[string]string{"a": "instance"})

	cc := instance.Wrap(client.Wrap(rec))
	require.NoError(t, cc.Invoke(context.Background(), "/pkg.Svc/Do", nil, nil))
	assert.Equal(t, []string{"instance"}, rec.md.Get("a"))
	assert.Equal(t, []string{"t"}, rec.md.Get("tenant"))

	_, err := cc.NewStream(context.Background(), &grpc.StreamDesc{}, "/pkg.Svc/Stream")
	require.NoError(t, err)
	assert.Equal(t, []string{"instance"}, rec.md.Get("a"))
}

func TestWrapConn_PanicsOnNilConn(t *testing.T) {
	assert.PanicsWithValue(t, "helpers.metadata_augmenter.go: cc is required", func() {
		WrapConn(nil, NewMetadataAugmenter())
	})
}
