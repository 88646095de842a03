package httphandler

import (
	"net/http"

	// Packages
	schema "github.com/ayush27316/Athena/pkg/schema"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /ai/generate
func GenerateHandler(manager GenerateManager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/ai/generate", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.GenerateRequest
				if err := httprequest.Read(r, &req); err != nil {
					_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With(err))
					return
				}

				// Perform operation and return response
				resp, err := manager.Generate(r.Context(), req)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Generate a structured answer to a prompt, with tool support",
			},
		})
}
