package http

import (
	"fmt"
	"net/http"

	"ordering/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// OpenAPIValidator rejects requests that do not match the OpenAPI document with 400.
// Routes the document does not describe, such as /health, pass through unchecked.
// Authentication is handled by PrincipalMiddleware, so security requirements are not
// evaluated here.
func OpenAPIValidator(swagger *openapi3.T) (echo.MiddlewareFunc, error) {
	// Match on paths only, whatever host the service is reached under.
	swagger.Servers = nil

	router, err := legacy.NewRouter(swagger)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validationErr := openapi3filter.ValidateRequest(req.Context(), input); validationErr != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(validationErr),
				})
			}

			return next(ctx)
		}
	}, nil
}

func validationMessage(err error) string {
	switch e := err.(type) { //nolint:errorlint // openapi3filter returns these types unwrapped
	case *openapi3filter.RequestError:
		if e.Parameter != nil {
			return fmt.Sprintf("invalid parameter %s: %s", e.Parameter.Name, e.Reason)
		}
		if e.Err != nil {
			return fmt.Sprintf("invalid request body: %s", e.Err)
		}
		return fmt.Sprintf("invalid request: %s", e.Reason)
	default:
		return err.Error()
	}
}
