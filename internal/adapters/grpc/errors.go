package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// errorKindTrailer carries the planning error kind from server to client
const errorKindTrailer = "x-planner-error-kind"

// RemoteError is a planning failure reported by a remote planner
type RemoteError struct {
	Code    codes.Code
	ErrKind string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Kind returns the planning error kind reported by the server
func (e *RemoteError) Kind() string {
	return e.ErrKind
}

// codeForKind maps planning error kinds to gRPC status codes
func codeForKind(kind string) codes.Code {
	switch kind {
	case production.KindInvalidRate, production.KindInvalidBundle, production.KindInvalidEquipmentRate:
		return codes.InvalidArgument
	case production.KindUnknownEntity:
		return codes.NotFound
	case production.KindMissingCatalogEntry, production.KindRecipeCycle, production.KindDepthExceeded:
		return codes.FailedPrecondition
	}
	return codes.Internal
}

// toStatusError converts a handler error into a status error and records its kind
// in the response trailer
func toStatusError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	kind := production.ErrorKind(err)
	_ = grpc.SetTrailer(ctx, metadata.Pairs(errorKindTrailer, kind))

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Error(codeForKind(kind), err.Error())
}

// fromStatusError converts a client call error back into a RemoteError
func fromStatusError(err error, trailer metadata.MD) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	kind := production.KindInternal
	if values := trailer.Get(errorKindTrailer); len(values) > 0 && values[0] != "" {
		kind = values[0]
	}
	return &RemoteError{Code: st.Code(), ErrKind: kind, Message: st.Message()}
}
