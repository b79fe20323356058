package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderByTrackingNumberQueryIsNotConstructed = errors.New(
		"GetOrderByTrackingNumberQuery must be created via NewGetOrderByTrackingNumberQuery constructor",
	)
)

// GetOrderByTrackingNumberQuery resolves a printed label to its order.
type GetOrderByTrackingNumberQuery struct { //nolint:recvcheck //using for validation
	trackingNumber string
	actor          order.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderByTrackingNumberQuery normalizes the code to upper case.
func NewGetOrderByTrackingNumberQuery(trackingNumber string, actor order.Actor) (GetOrderByTrackingNumberQuery, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))

	var trackingErr error
	if trackingNumber == "" {
		trackingErr = errs.NewValueIsRequiredError("trackingNumber")
	}
	if err := errors.Join(trackingErr, actor.Validate()); err != nil {
		return GetOrderByTrackingNumberQuery{}, err
	}

	return GetOrderByTrackingNumberQuery{
		trackingNumber: trackingNumber,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderByTrackingNumberQuery) TrackingNumber() string { return q.trackingNumber }
func (q GetOrderByTrackingNumberQuery) Actor() order.Actor     { return q.actor }

// Validate ensures the query was created through the constructor.
func (q GetOrderByTrackingNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByTrackingNumberQueryIsNotConstructed)
}
