package grpctable

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/entable/entable/hashtable"
)

// isAbsent reports whether err is the server's encoding of a defined absent
// lookup (which is not an error on the HashTable interface).
func isAbsent(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.NotFound
}

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		// Server uses InvalidArgument for malformed addresses and payloads.
		return hashtable.ErrInvalidAddress
	case codes.DataLoss:
		// Server uses DataLoss when stored bytes failed to decode.
		return &hashtable.DecodeError{Table: "remote", Address: "", Err: err}
	default:
		return err
	}
}
