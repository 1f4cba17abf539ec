package handlers

import (
	"errors"
	"net/http"

	"github.com/lastclick-network/lastclick/internal/core/domain"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errMissingIdentity = status.Error(codes.Unauthenticated, "missing caller identity")

// toStatusError turns an error of the app service into a gRPC status.
// Anything that is not a domain error is reported as internal.
func toStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, domain.ErrAlreadyInitialized) {
		return status.Error(codes.AlreadyExists, err.Error())
	}

	kind, ok := domain.KindOf(err)
	if !ok {
		log.WithError(err).Error("unexpected error")
		return status.Error(codes.Internal, err.Error())
	}

	switch kind {
	case domain.KindAuthorization:
		return status.Error(codes.PermissionDenied, err.Error())
	case domain.KindValidation:
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case domain.KindPrecondition, domain.KindResource:
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.FailedPrecondition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
