package http

import (
	"net/http"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the trusted auth gateway in front of the service.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const actorContextKey = "fulfillment.actor"

// Authenticate turns the gateway identity headers into an order.Actor. Requests
// without a valid identity are rejected with 401 before reaching a handler.
func Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := kernel.UUIDFromString(c.Request().Header.Get(HeaderUserID))
			if err != nil {
				return unauthorized(c, "missing or invalid "+HeaderUserID+" header")
			}
			role, err := order.ParseRole(c.Request().Header.Get(HeaderUserRole))
			if err != nil {
				return unauthorized(c, "missing or invalid "+HeaderUserRole+" header")
			}
			actor, err := order.NewActor(userID, role)
			if err != nil {
				return unauthorized(c, err.Error())
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// actorFrom returns the zero Actor when the middleware did not run; commands
// reject it as invalid.
func actorFrom(c echo.Context) order.Actor {
	actor, _ := c.Get(actorContextKey).(order.Actor)
	return actor
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}
