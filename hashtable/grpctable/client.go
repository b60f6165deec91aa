package grpctable

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/entable/entable/content"
	"github.com/entable/entable/entry"
	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/meta"
)

// Client implements hashtable.HashTable over a HashTable gRPC service.
//
// The client re-verifies content addressing on every read: bytes returned by
// the server must re-derive to the requested address.
type Client struct {
	cc     *grpc.ClientConn
	client HashTableClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var _ hashtable.HashTable = (*Client)(nil)

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewHashTableClient(cc), Timeout: 0}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) PutEntry(e *entry.Entry) error {
	b, err := e.Content()
	if err != nil {
		return err
	}

	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.PutEntry(ctx, wrapperspb.Bytes([]byte(b)))
	if err != nil {
		return mapRPC(err)
	}
	if content.Address(reply.GetValue()) != e.Address() {
		return hashtable.ErrAddressMismatch
	}
	return nil
}

func (c *Client) Entry(address content.Address) (*entry.Entry, error) {
	if address == "" {
		return nil, hashtable.ErrInvalidAddress
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Entry(ctx, wrapperspb.String(string(address)))
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, mapRPC(err)
	}
	e, err := entry.FromContent(content.Content(reply.GetValue()))
	if err != nil {
		return nil, &hashtable.DecodeError{Table: "entries", Address: address, Err: err}
	}
	if e.Address() != address {
		return nil, hashtable.ErrAddressMismatch
	}
	return e, nil
}

func (c *Client) AssertMeta(m *meta.EntryMeta) error {
	b, err := m.Content()
	if err != nil {
		return err
	}

	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.AssertMeta(ctx, wrapperspb.Bytes([]byte(b)))
	if err != nil {
		return mapRPC(err)
	}
	if content.Address(reply.GetValue()) != m.Address() {
		return hashtable.ErrAddressMismatch
	}
	return nil
}

func (c *Client) Meta(address content.Address) (*meta.EntryMeta, error) {
	if address == "" {
		return nil, hashtable.ErrInvalidAddress
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Meta(ctx, wrapperspb.String(string(address)))
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, mapRPC(err)
	}
	m, err := meta.FromContent(content.Content(reply.GetValue()))
	if err != nil {
		return nil, &hashtable.DecodeError{Table: "metas", Address: address, Err: err}
	}
	if m.Address() != address {
		return nil, hashtable.ErrAddressMismatch
	}
	return m, nil
}

func (c *Client) MetasFromEntry(e *entry.Entry) ([]*meta.EntryMeta, error) {
	b, err := e.Content()
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.MetasFromEntry(ctx, wrapperspb.Bytes([]byte(b)))
	if err != nil {
		return nil, mapRPC(err)
	}

	metas := make([]*meta.EntryMeta, 0, len(reply.GetValues()))
	for _, v := range reply.GetValues() {
		m, err := meta.FromContent(content.Content(v.GetStringValue()))
		if err != nil {
			return nil, &hashtable.DecodeError{Table: "metas", Address: "", Err: err}
		}
		metas = append(metas, m)
	}
	// The server already sorts; re-sort so the contract holds against any
	// server implementation.
	meta.Sort(metas)
	return metas, nil
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
