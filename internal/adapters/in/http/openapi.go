package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// DocsInstance is the swag registry name the Swagger UI reads from.
const DocsInstance = "bikerental"

var (
	registerDocs sync.Once
	docsSpec     *swag.Spec
)

// OpenAPI is the loaded API document. Requests are checked against it
// before they reach the handlers, and it is served to Swagger UI.
//
// Example:
//
//	doc, err := http.LoadOpenAPI(ctx, apidoc.OpenAPI)
//	if err != nil {
//	    return err
//	}
//	e.Use(doc.ValidationMiddleware())
//	doc.RegisterDocs(e)
type OpenAPI struct {
	doc    *openapi3.T
	router routers.Router
}

// LoadOpenAPI parses and validates the document and builds its router.
func LoadOpenAPI(ctx context.Context, data []byte) (*OpenAPI, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return &OpenAPI{doc: doc, router: router}, nil
}

// ValidationMiddleware rejects requests whose parameters or body do not
// match the document with 400. Routes the document does not describe, such
// as /metrics and /swagger, pass through unchecked.
func (o *OpenAPI) ValidationMiddleware() echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		// The JWT middleware authenticates; the document only declares it.
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := o.router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return badRequest(c, validationMessage(err))
			}

			return next(c)
		}
	}
}

// RegisterDocs publishes the document to swag and mounts Swagger UI under
// /swagger. The document itself is served at /swagger/doc.json.
func (o *OpenAPI) RegisterDocs(e *echo.Echo) error {
	raw, err := json.Marshal(o.doc)
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}

	registerDocs.Do(func() {
		docsSpec = &swag.Spec{
			Version:          o.doc.Info.Version,
			Title:            o.doc.Info.Title,
			Description:      o.doc.Info.Description,
			InfoInstanceName: DocsInstance,
			SwaggerTemplate:  string(raw),
			LeftDelim:        "{%",
			RightDelim:       "%}",
		}
		swag.Register(docsSpec.InstanceName(), docsSpec)
	})

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(DocsInstance)))
	return nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return "Invalid request"
	}

	if reqErr.Parameter != nil {
		return fmt.Sprintf("Invalid %s parameter %q", reqErr.Parameter.In, reqErr.Parameter.Name)
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			return fmt.Sprintf("Invalid request body at %s: %s", strings.Join(pointer, "."), schemaErr.Reason)
		}
		return "Invalid request body: " + schemaErr.Reason
	}

	reason := reqErr.Reason
	if reason == "" && reqErr.Err != nil {
		reason = reqErr.Err.Error()
	}
	if reqErr.RequestBody != nil {
		return "Invalid request body: " + reason
	}
	return "Invalid request: " + reason
}
