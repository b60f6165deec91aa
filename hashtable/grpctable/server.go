package grpctable

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/entable/entable/content"
	"github.com/entable/entable/entry"
	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/meta"
)

// Server exposes a hashtable.HashTable over the HashTable gRPC service.
//
// Absent lookups are reported as codes.NotFound; the client translates them
// back to the interface's (nil, nil) outcome.
type Server struct {
	UnimplementedHashTableServer
	Table hashtable.HashTable
}

func (s *Server) PutEntry(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if s == nil || s.Table == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing table")
	}
	e, err := entry.FromContent(content.Content(in.GetValue()))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.Table.PutEntry(e); err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(string(e.Address())), nil
}

func (s *Server) Entry(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Table == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing table")
	}
	e, err := s.Table.Entry(content.Address(in.GetValue()))
	if err != nil {
		return nil, mapErr(err)
	}
	if e == nil {
		return nil, status.Error(codes.NotFound, "entry not found")
	}
	c, err := e.Content()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Bytes([]byte(c)), nil
}

func (s *Server) AssertMeta(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if s == nil || s.Table == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing table")
	}
	m, err := meta.FromContent(content.Content(in.GetValue()))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.Table.AssertMeta(m); err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(string(m.Address())), nil
}

func (s *Server) Meta(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Table == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing table")
	}
	m, err := s.Table.Meta(content.Address(in.GetValue()))
	if err != nil {
		return nil, mapErr(err)
	}
	if m == nil {
		return nil, status.Error(codes.NotFound, "meta not found")
	}
	c, err := m.Content()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Bytes([]byte(c)), nil
}

func (s *Server) MetasFromEntry(ctx context.Context, in *wrapperspb.BytesValue) (*structpb.ListValue, error) {
	_ = ctx
	if s == nil || s.Table == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing table")
	}
	e, err := entry.FromContent(content.Content(in.GetValue()))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	metas, err := s.Table.MetasFromEntry(e)
	if err != nil {
		return nil, mapErr(err)
	}
	values := make([]*structpb.Value, 0, len(metas))
	for _, m := range metas {
		c, err := m.Content()
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		values = append(values, structpb.NewStringValue(string(c)))
	}
	return &structpb.ListValue{Values: values}, nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case err == hashtable.ErrInvalidAddress:
		return status.Error(codes.InvalidArgument, err.Error())
	case hashtable.IsDecode(err):
		return status.Error(codes.DataLoss, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
