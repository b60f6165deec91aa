// Package grpctable exposes a hashtable.HashTable over gRPC: a server
// wrapping any local backend and a client implementing the interface against
// a remote one.
package grpctable

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// HashTableServer is the server API for the HashTable gRPC service.
//
// We intentionally use protobuf well-known types (wrappers and ListValue) so
// this package does not require a protoc/codegen toolchain.
//
// Wire conventions:
// - entries and metas travel as their raw content bytes
// - addresses travel as their canonical string form
// - MetasFromEntry returns a ListValue of string values, each one assertion's
//   content, already in the EntryMeta total order
type HashTableServer interface {
	PutEntry(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	Entry(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	AssertMeta(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	Meta(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	MetasFromEntry(context.Context, *wrapperspb.BytesValue) (*structpb.ListValue, error)
}

// UnimplementedHashTableServer can be embedded to have forward compatible
// implementations.
type UnimplementedHashTableServer struct{}

func (UnimplementedHashTableServer) PutEntry(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method PutEntry not implemented")
}
func (UnimplementedHashTableServer) Entry(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Entry not implemented")
}
func (UnimplementedHashTableServer) AssertMeta(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method AssertMeta not implemented")
}
func (UnimplementedHashTableServer) Meta(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Meta not implemented")
}
func (UnimplementedHashTableServer) MetasFromEntry(context.Context, *wrapperspb.BytesValue) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method MetasFromEntry not implemented")
}

// RegisterHashTableServer registers the HashTable service on a gRPC server.
func RegisterHashTableServer(s grpc.ServiceRegistrar, srv HashTableServer) {
	s.RegisterService(&HashTable_ServiceDesc, srv)
}

// HashTableClient is the client API for the HashTable gRPC service.
type HashTableClient interface {
	PutEntry(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Entry(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	AssertMeta(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Meta(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	MetasFromEntry(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type hashTableClient struct{ cc grpc.ClientConnInterface }

func NewHashTableClient(cc grpc.ClientConnInterface) HashTableClient { return &hashTableClient{cc: cc} }

const (
	methodPutEntry       = "/entable.hashtable.grpctable.v1.HashTable/PutEntry"
	methodEntry          = "/entable.hashtable.grpctable.v1.HashTable/Entry"
	methodAssertMeta     = "/entable.hashtable.grpctable.v1.HashTable/AssertMeta"
	methodMeta           = "/entable.hashtable.grpctable.v1.HashTable/Meta"
	methodMetasFromEntry = "/entable.hashtable.grpctable.v1.HashTable/MetasFromEntry"
)

func (c *hashTableClient) PutEntry(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, methodPutEntry, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *hashTableClient) Entry(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, methodEntry, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *hashTableClient) AssertMeta(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, methodAssertMeta, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *hashTableClient) Meta(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, methodMeta, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *hashTableClient) MetasFromEntry(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, methodMetasFromEntry, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _HashTable_PutEntry_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HashTableServer).PutEntry(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodPutEntry}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(HashTableServer).PutEntry(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _HashTable_Entry_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HashTableServer).Entry(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodEntry}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(HashTableServer).Entry(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _HashTable_AssertMeta_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HashTableServer).AssertMeta(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodAssertMeta}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(HashTableServer).AssertMeta(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _HashTable_Meta_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HashTableServer).Meta(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodMeta}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(HashTableServer).Meta(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _HashTable_MetasFromEntry_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HashTableServer).MetasFromEntry(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodMetasFromEntry}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(HashTableServer).MetasFromEntry(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// HashTable_ServiceDesc is the grpc.ServiceDesc for the HashTable service.
var HashTable_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "entable.hashtable.grpctable.v1.HashTable",
	HandlerType: (*HashTableServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PutEntry", Handler: _HashTable_PutEntry_Handler},
		{MethodName: "Entry", Handler: _HashTable_Entry_Handler},
		{MethodName: "AssertMeta", Handler: _HashTable_AssertMeta_Handler},
		{MethodName: "Meta", Handler: _HashTable_Meta_Handler},
		{MethodName: "MetasFromEntry", Handler: _HashTable_MetasFromEntry_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hashtable.proto",
}
