package commands

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRequestRefundCommandIsNotConstructed = errors.New(
	"RequestRefundCommand must be created via NewRequestRefundCommand constructor",
)

// RequestRefundCommand is a customer asking for a refund on a delivered order.
type RequestRefundCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actor        order.Actor
	reason       string
	evidenceURLs []string

	guard guard.ConstructorGuard
}

func NewRequestRefundCommand(
	orderID kernel.UUID,
	actor order.Actor,
	reason string,
	evidenceURLs []string,
) (RequestRefundCommand, error) {
	cmd := RequestRefundCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		cmd.setReason(reason),
		cmd.setEvidenceURLs(evidenceURLs),
	); err != nil {
		return RequestRefundCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	return cmd, nil
}

func (c RequestRefundCommand) Validate() error {
	return c.guard.Validate(ErrRequestRefundCommandIsNotConstructed)
}

func (c RequestRefundCommand) OrderID() kernel.UUID { return c.orderID }
func (c RequestRefundCommand) Actor() order.Actor   { return c.actor }
func (c RequestRefundCommand) Reason() string       { return c.reason }

func (c RequestRefundCommand) EvidenceURLs() []string {
	return append([]string(nil), c.evidenceURLs...)
}

func (c *RequestRefundCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}

func (c *RequestRefundCommand) setEvidenceURLs(urls []string) error {
	for _, raw := range urls {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errs.NewValueIsInvalidErrorWithCause("evidenceUrls", fmt.Errorf("%q is not an absolute url", raw))
		}
		c.evidenceURLs = append(c.evidenceURLs, u.String())
	}
	return nil
}
