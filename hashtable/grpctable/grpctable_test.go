package grpctable

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/entable/entable/entry"
	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/hashtable/memtable"
	"github.com/entable/entable/hashtable/testkit"
	"github.com/entable/entable/meta"
)

func newBufconnClient(t *testing.T, table hashtable.HashTable) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterHashTableServer(srv, &Server{Table: table})

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewHashTableClient(cc), Timeout: 2 * time.Second}
}

func TestGRPCTable_Conformance(t *testing.T) {
	testkit.RunConformance(t, func(t *testing.T) hashtable.HashTable {
		t.Helper()
		return newBufconnClient(t, memtable.New())
	})
}

func TestGRPCTable_MemTable_RoundTrip(t *testing.T) {
	client := newBufconnClient(t, memtable.New())

	e := entry.New("hello grpctable")
	if err := client.PutEntry(e); err != nil {
		t.Fatalf("PutEntry: %v", err)
	}
	got, err := client.Entry(e.Address())
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if got == nil || got.Value() != e.Value() {
		t.Fatalf("Entry mismatch: %+v", got)
	}

	m1 := meta.New("agentA", e.Address(), "color", "red")
	if err := client.AssertMeta(m1); err != nil {
		t.Fatalf("AssertMeta: %v", err)
	}
	m2 := meta.New("agentB", e.Address(), "color", "blue")
	if err := client.AssertMeta(m2); err != nil {
		t.Fatalf("AssertMeta: %v", err)
	}

	gotMeta, err := client.Meta(m1.Address())
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if gotMeta == nil || !gotMeta.Equal(m2) {
		t.Fatalf("Meta: expected last write, got %+v", gotMeta)
	}

	metas, err := client.MetasFromEntry(e)
	if err != nil {
		t.Fatalf("MetasFromEntry: %v", err)
	}
	if len(metas) != 1 || !metas[0].Equal(m2) {
		t.Fatalf("MetasFromEntry: expected [m2], got %d metas", len(metas))
	}
}

func TestGRPCTable_AbsentIsNotAnError(t *testing.T) {
	client := newBufconnClient(t, memtable.New())

	e, err := client.Entry(entry.New("never stored").Address())
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e != nil {
		t.Fatalf("expected absent entry")
	}

	m, err := client.Meta(meta.MakeAddress(entry.New("never stored").Address(), "attr"))
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if m != nil {
		t.Fatalf("expected absent meta")
	}
}

func TestGRPCTable_InvalidAddress(t *testing.T) {
	client := newBufconnClient(t, memtable.New())

	if _, err := client.Entry(""); err != hashtable.ErrInvalidAddress {
		t.Fatalf("Entry(\"\"): got %v, want ErrInvalidAddress", err)
	}
}
