package http

import (
	"encoding/json"
	"fmt"
	"strings"

	"fulfillment/internal/adapters/in/http/docs"
	"fulfillment/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
)

// LoadAPIDoc parses the served swagger document into an OpenAPI 3 model.
func LoadAPIDoc() (*openapi3.T, error) {
	var doc2 openapi2.T
	if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc2); err != nil {
		return nil, fmt.Errorf("parse api doc: %w", err)
	}
	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("convert api doc: %w", err)
	}
	return doc3, nil
}

// ValidateRequests checks parameters and JSON bodies against doc before the
// handler runs. Routes the document does not describe pass through.
func (s *Server) ValidateRequests(doc *openapi3.T, basePath string) echo.MiddlewareFunc {
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route, ok := routeFor(doc, basePath, c)
			if !ok {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    c.Request(),
				PathParams: pathParams(c),
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(c.Request().Context(), input); err != nil {
				return s.fail(c, errs.NewValueIsInvalidErrorWithCause("request", err))
			}
			return next(c)
		}
	}
}

// routeFor maps an echo route ("/api/v1/orders/:orderId") to its document path
// ("/orders/{orderId}").
func routeFor(doc *openapi3.T, basePath string, c echo.Context) (*routers.Route, bool) {
	segments := strings.Split(strings.TrimPrefix(c.Path(), basePath), "/")
	for i, seg := range segments {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			segments[i] = "{" + name + "}"
		}
	}
	path := strings.Join(segments, "/")

	item := doc.Paths.Value(path)
	if item == nil {
		return nil, false
	}
	method := c.Request().Method
	op := item.GetOperation(method)
	if op == nil {
		return nil, false
	}
	return &routers.Route{
		Spec:      doc,
		Path:      path,
		PathItem:  item,
		Method:    method,
		Operation: op,
	}, true
}

func pathParams(c echo.Context) map[string]string {
	names := c.ParamNames()
	values := c.ParamValues()
	params := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(values) {
			params[name] = values[i]
		}
	}
	return params
}
