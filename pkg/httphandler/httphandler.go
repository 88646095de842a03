package httphandler

import (
	"context"
	"errors"
	"net/http"

	// Packages
	athena "github.com/ayush27316/Athena"
	opt "github.com/ayush27316/Athena/pkg/opt"
	schema "github.com/ayush27316/Athena/pkg/schema"
	server "github.com/mutablelogic/go-server"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Router interface {
	RegisterFunc(path string, handler http.HandlerFunc, middleware bool, spec *openapi.PathItem) error
}

// GenerateManager is the generation surface the handlers expose
type GenerateManager interface {
	Generate(ctx context.Context, request schema.GenerateRequest, opts ...opt.Opt) (*schema.GenerateResponse, error)
	ListModels(ctx context.Context) ([]schema.Model, error)
}

func RegisterHandlers(manager GenerateManager, router server.HTTPRouter, middleware bool) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, handler http.HandlerFunc, spec *openapi.PathItem) {
		result = errors.Join(result, router.(Router).RegisterFunc(path, handler, middleware, spec))
	}

	// Register handlers
	register(GenerateHandler(manager))
	register(ModelListHandler(manager))
	register(HealthHandler())

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts an athena.Err to an httpresponse.Err, preserving the
// original error message. Unknown error codes map to 500.
func httpErr(err error) error {
	var code athena.Err
	if !errors.As(err, &code) {
		return err
	}
	switch code {
	case athena.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case athena.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case athena.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case athena.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
