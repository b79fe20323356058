package http

import (
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromString(raw)
}

func pathString(c echo.Context, name string) (string, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return raw, nil
}

func queryString(c echo.Context, name string, required bool) (string, error) {
	var raw string
	if err := runtime.BindQueryParameter("form", true, required, name, c.QueryParams(), &raw); err != nil {
		if required && strings.TrimSpace(c.QueryParam(name)) == "" {
			return "", errs.NewValueIsRequiredErrorWithCause(name, err)
		}
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return raw, nil
}

// queryUUIDs binds a repeated query parameter such as ?zoneId=a&zoneId=b.
func queryUUIDs(c echo.Context, name string) ([]kernel.UUID, error) {
	var raw []string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &raw); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromString(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// optionalUUID parses an optional id field of a request body; nil and "" mean absent.
func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil //nolint:nilnil // absent is not an error
	}
	id, err := kernel.UUIDFromString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, err
	}
	return &id, nil
}
