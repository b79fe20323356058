package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Order is the aggregate root of the fulfillment lifecycle. Every change of status,
// agent assignment, storage location and ledger goes through Transition (or the
// advisory-discrepancy and dispute appends), so the invariants below hold:
//   - status always equals the status of the last statusChangeLog entry, or
//     Confirmed while no transition has happened yet
//   - trackingHistory and statusChangeLog only grow
//   - version grows by one on every persisted mutation and, with status, forms
//     the compare-and-swap key used by repositories
//   - monetary facts never change after confirmation
type Order struct {
	id             kernel.UUID
	trackingNumber string
	customerID     kernel.UUID
	sellerID       kernel.UUID

	items       []Item
	subtotal    kernel.Money
	deliveryFee kernel.Money
	total       kernel.Money

	shippingAddress kernel.Address
	deliveryMethod  DeliveryMethod
	pickupPointID   *kernel.UUID

	status  Status
	version int

	// agentID is set and cleared only by dispatch transitions
	agentID *kernel.UUID

	// depot fields are set only by check-in
	depotID           *kernel.UUID
	storageLocationID string
	checkedInAt       *time.Time
	checkedInBy       *kernel.UUID

	ledger ledger

	discrepancy     *Discrepancy
	deliveryFailure *DeliveryFailure
	refundRequest   *RefundRequest
	disputeLog      []DisputeMessage

	createdAt time.Time

	// events raised since the aggregate was loaded, drained by PullEvents
	events []Event

	guard guard.ConstructorGuard
}

// CheckoutDetails carries what checkout confirmation hands to the fulfillment core.
// Prices and fees come from the pricing collaborator and are taken as is.
type CheckoutDetails struct {
	TrackingNumber  string
	CustomerID      kernel.UUID
	SellerID        kernel.UUID
	Items           []Item
	DeliveryFee     kernel.Money
	ShippingAddress kernel.Address
	DeliveryMethod  DeliveryMethod
	PickupPointID   *kernel.UUID
}

// Payload carries transition-specific data.
type Payload struct {
	AgentID           *kernel.UUID
	DepotID           *kernel.UUID
	StorageLocationID string
	RecipientName     string
	Location          string
	Detail            string

	FailureReason FailureReason

	DiscrepancyKind   DiscrepancyKind
	DiscrepancyReason string

	RefundReason string
	EvidenceURLs []string
}

// NewOrder creates a confirmed order from checkout. Creation opens the tracking
// history; the status change log only records transitions and starts empty.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.CheckoutDetails{
//	    CustomerID:      customerID,
//	    SellerID:        sellerID,
//	    Items:           items,
//	    DeliveryFee:     fee,
//	    ShippingAddress: addr,
//	    DeliveryMethod:  order.DeliveryHomeDelivery,
//	}, time.Now())
func NewOrder(id kernel.UUID, details CheckoutDetails, at time.Time) (*Order, error) {
	o := &Order{
		status:  Confirmed,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setParties(details.CustomerID, details.SellerID),
		o.setItems(details.Items, details.DeliveryFee),
		o.setShipping(details.ShippingAddress, details.DeliveryMethod, details.PickupPointID),
	); err != nil {
		return nil, err
	}

	o.trackingNumber = strings.TrimSpace(details.TrackingNumber)
	if o.trackingNumber == "" {
		o.trackingNumber = TrackingNumberFor(id)
	}
	o.createdAt = at

	o.ledger.track(TrackingEvent{Status: Confirmed, At: at, Detail: "Order confirmed"})
	o.raise(EventStatusChanged, Unknown, Actor{UserID: details.CustomerID, Role: RoleCustomer}, at, nil)

	return o, nil
}

// TrackingNumberFor derives the printable label code from the order id.
func TrackingNumberFor(id kernel.UUID) string {
	raw := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return "TRK-" + raw[:10]
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) TrackingNumber() string          { return o.trackingNumber }
func (o *Order) CustomerID() kernel.UUID         { return o.customerID }
func (o *Order) SellerID() kernel.UUID           { return o.sellerID }
func (o *Order) Items() []Item                   { return slices.Clone(o.items) }
func (o *Order) Subtotal() kernel.Money          { return o.subtotal }
func (o *Order) DeliveryFee() kernel.Money       { return o.deliveryFee }
func (o *Order) Total() kernel.Money             { return o.total }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) DeliveryMethod() DeliveryMethod  { return o.deliveryMethod }
func (o *Order) PickupPointID() *kernel.UUID     { return copyID(o.pickupPointID) }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) Version() int                    { return o.version }
func (o *Order) AgentID() *kernel.UUID           { return copyID(o.agentID) }
func (o *Order) DepotID() *kernel.UUID           { return copyID(o.depotID) }
func (o *Order) StorageLocationID() string       { return o.storageLocationID }
func (o *Order) CheckedInBy() *kernel.UUID       { return copyID(o.checkedInBy) }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }

func (o *Order) CheckedInAt() *time.Time {
	if o.checkedInAt == nil {
		return nil
	}
	t := *o.checkedInAt
	return &t
}

// TrackingHistory returns a copy of the human-readable ledger.
func (o *Order) TrackingHistory() []TrackingEvent {
	return o.ledger.trackingHistory()
}

// StatusChangeLog returns a copy of the audit trail.
func (o *Order) StatusChangeLog() []StatusChange {
	return o.ledger.statusChangeLog()
}

// LastStatusChange returns the most recent audit entry, if any transition happened.
func (o *Order) LastStatusChange() (StatusChange, bool) {
	return o.ledger.lastChange()
}

func (o *Order) Discrepancy() *Discrepancy {
	if o.discrepancy == nil {
		return nil
	}
	d := *o.discrepancy
	return &d
}

func (o *Order) DeliveryFailure() *DeliveryFailure {
	if o.deliveryFailure == nil {
		return nil
	}
	f := *o.deliveryFailure
	return &f
}

func (o *Order) RefundRequest() *RefundRequest {
	if o.refundRequest == nil {
		return nil
	}
	r := *o.refundRequest
	r.EvidenceURLs = slices.Clone(r.EvidenceURLs)
	return &r
}

func (o *Order) DisputeLog() []DisputeMessage {
	return slices.Clone(o.disputeLog)
}

// Transition moves the order to status `to` on behalf of actor. It checks the
// transition table, the actor's relationship to the order and the payload
// required by the target status before touching anything: on error the order
// is left exactly as it was.
//
// On success the status and version change, agent/depot side data is set from
// the payload, one TrackingEvent and one StatusChange are appended and the
// matching domain events are raised.
func (o *Order) Transition(to Status, actor Actor, payload Payload, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	from := o.status
	if err := CheckTransition(from, to, actor.Role); err != nil {
		return err
	}
	if err := o.checkActorScope(from, to, actor, payload); err != nil {
		return err
	}

	apply, detail, err := o.prepare(from, to, actor, payload, at)
	if err != nil {
		return err
	}

	apply()
	o.status = to
	o.version++

	if payload.Detail != "" && to != DeliveryFailed {
		detail = payload.Detail
	}
	location := payload.Location
	if location == "" {
		location = o.defaultLocation(to)
	}
	o.ledger.track(TrackingEvent{Status: to, At: at, Location: location, Detail: detail})
	o.ledger.recordChange(StatusChange{Status: to, At: at, ChangedBy: actor.UserID, Role: actor.Role})
	o.raise(EventStatusChanged, from, actor, at, nil)

	return nil
}

// NoteDiscrepancy attaches an advisory discrepancy without changing status.
// Blocking kinds are rejected here; they go through Transition to DepotIssue.
// The note still counts as a mutation (version bump, one tracking entry). While
// an advisory note is attached a second one is rejected.
func (o *Order) NoteDiscrepancy(kind DiscrepancyKind, reason string, actor Actor, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if kind.IsBlocking() {
		return errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%s is blocking and must move the order to %s", kind, DepotIssue))
	}
	if _, err := ParseDiscrepancyKind(string(kind)); err != nil {
		return err
	}
	if o.status != PickedUp && o.status != AtDepot {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("discrepancies can only be noted on %s or %s orders, order is %s", PickedUp, AtDepot, o.status))
	}
	if actor.Role != RoleDepotAgent && actor.Role != RoleDepotManager && actor.Role != RoleSuperadmin {
		return NewForbiddenError(actor.Role, o.status, o.status, "only depot staff can report discrepancies")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if o.discrepancy != nil && !o.discrepancy.Blocking {
		return errs.NewValueIsInvalidErrorWithCause("discrepancy",
			fmt.Errorf("an advisory %s note is already attached", o.discrepancy.Kind))
	}

	o.discrepancy = &Discrepancy{Kind: kind, Reason: reason, Blocking: false, ReportedAt: at, ReportedBy: actor.UserID}
	o.version++
	o.ledger.track(TrackingEvent{
		Status:   o.status,
		At:       at,
		Location: o.defaultLocation(o.status),
		Detail:   fmt.Sprintf("Advisory discrepancy (%s): %s", kind, reason),
	})
	o.raise(EventDiscrepancyReported, o.status, actor, at, map[string]string{
		"kind":     string(kind),
		"reason":   reason,
		"blocking": "false",
	})
	return nil
}

// AppendDispute adds a message to the dispute log. Allowed at any status and never
// changes status or version: disputes are not gated by the state machine.
func (o *Order) AppendDispute(msg DisputeMessage) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := msg.AuthorID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(msg.Message) == "" {
		return errs.NewValueIsRequiredError("message")
	}

	o.disputeLog = append(o.disputeLog, msg)
	o.raise(EventDisputeMessageAdded, o.status, Actor{UserID: msg.AuthorID, Role: msg.AuthorRole}, msg.At, nil)
	return nil
}

// PullEvents returns the events raised since the last call and forgets them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// checkActorScope enforces rules that depend on who the actor is relative to
// this order, on top of the role table.
func (o *Order) checkActorScope(from, to Status, actor Actor, payload Payload) error {
	if actor.Role == RoleSuperadmin {
		return nil
	}

	switch actor.Role { //nolint:exhaustive // remaining roles have no per-order scope
	case RoleDeliveryAgent:
		if (to == PickedUp || to == OutForDelivery) && payload.AgentID != nil && !payload.AgentID.IsEqual(actor.UserID) {
			return NewForbiddenError(actor.Role, from, to, "delivery agents can only assign themselves")
		}
		if from == OutForDelivery && (o.agentID == nil || !o.agentID.IsEqual(actor.UserID)) {
			return NewForbiddenError(actor.Role, from, to, "only the assigned agent can close this delivery")
		}
	case RoleCustomer:
		if !o.customerID.IsEqual(actor.UserID) {
			return NewForbiddenError(actor.Role, from, to, "order belongs to another customer")
		}
	case RoleSeller:
		if !o.sellerID.IsEqual(actor.UserID) {
			return NewForbiddenError(actor.Role, from, to, "order belongs to another seller")
		}
	}
	return nil
}

// prepare validates the payload for the target status and returns the side-data
// mutation to apply once every check has passed, plus the default tracking detail.
func (o *Order) prepare(from, to Status, actor Actor, payload Payload, at time.Time) (func(), string, error) {
	noop := func() {}

	switch to { //nolint:exhaustive // statuses without side data use the default branch
	case ReadyForPickup:
		return noop, "Parcel handed over by the seller, waiting for pickup", nil

	case PickedUp:
		agentID, err := requireAgent(payload)
		if err != nil {
			return nil, "", err
		}
		return func() { o.agentID = &agentID }, "Picked up by delivery agent", nil

	case AtDepot:
		return o.prepareAtDepot(from, actor, payload, at)

	case OutForDelivery:
		agentID, err := requireAgent(payload)
		if err != nil {
			return nil, "", err
		}
		return func() { o.agentID = &agentID }, "Out for delivery", nil

	case Delivered:
		detail := "Delivered"
		if name := strings.TrimSpace(payload.RecipientName); name != "" {
			detail = "Delivered to " + name
		}
		return noop, detail, nil

	case DeliveryFailed:
		reason, err := ParseFailureReason(string(payload.FailureReason))
		if err != nil {
			return nil, "", err
		}
		failure := DeliveryFailure{
			Reason:     reason,
			Details:    strings.TrimSpace(payload.Detail),
			ReportedAt: at,
			ReportedBy: actor.UserID,
		}
		detail := "Delivery failed: " + string(reason)
		if failure.Details != "" {
			detail += " (" + failure.Details + ")"
		}
		return func() {
			o.deliveryFailure = &failure
			o.raise(EventDeliveryFailed, from, actor, at, map[string]string{
				"reason":  string(reason),
				"details": failure.Details,
			})
		}, detail, nil

	case DepotIssue:
		if _, err := ParseDiscrepancyKind(string(payload.DiscrepancyKind)); err != nil {
			return nil, "", err
		}
		if !payload.DiscrepancyKind.IsBlocking() {
			return nil, "", errs.NewValueIsInvalidErrorWithCause("kind",
				fmt.Errorf("%s is advisory and does not change status", payload.DiscrepancyKind))
		}
		reason := strings.TrimSpace(payload.DiscrepancyReason)
		if reason == "" {
			return nil, "", errs.NewValueIsRequiredError("reason")
		}
		d := Discrepancy{
			Kind:       payload.DiscrepancyKind,
			Reason:     reason,
			Blocking:   true,
			ReportedAt: at,
			ReportedBy: actor.UserID,
		}
		return func() {
			o.discrepancy = &d
			o.raise(EventDiscrepancyReported, from, actor, at, map[string]string{
				"kind":     string(d.Kind),
				"reason":   d.Reason,
				"blocking": "true",
			})
		}, fmt.Sprintf("Blocking discrepancy (%s): %s", d.Kind, d.Reason), nil

	case RefundRequested:
		reason := strings.TrimSpace(payload.RefundReason)
		if reason == "" {
			return nil, "", errs.NewValueIsRequiredError("reason")
		}
		req := RefundRequest{
			Reason:       reason,
			EvidenceURLs: slices.Clone(payload.EvidenceURLs),
			RequestedAt:  at,
			RequestedBy:  actor.UserID,
		}
		return func() {
			o.refundRequest = &req
			o.raise(EventRefundRequested, from, actor, at, map[string]string{"reason": reason})
		}, "Refund requested: " + reason, nil

	case Refunded:
		return noop, "Refund issued", nil
	case Cancelled:
		return noop, "Order cancelled", nil
	case Returned:
		return noop, "Returned to sender", nil
	default:
		return noop, to.String(), nil
	}
}

func (o *Order) prepareAtDepot(from Status, actor Actor, payload Payload, at time.Time) (func(), string, error) {
	location := strings.TrimSpace(payload.StorageLocationID)

	switch from { //nolint:exhaustive // only the legal predecessors of at-depot are handled
	case PickedUp:
		var depotErr, locationErr error
		if payload.DepotID == nil {
			depotErr = errs.NewValueIsRequiredError("depotId")
		} else if err := payload.DepotID.Validate(); err != nil {
			depotErr = err
		}
		if location == "" {
			locationErr = errs.NewValueIsRequiredError("storageLocationId")
		}
		if err := errors.Join(depotErr, locationErr); err != nil {
			return nil, "", err
		}
		depotID := *payload.DepotID
		checkedInBy := actor.UserID
		checkedInAt := at
		return func() {
			o.depotID = &depotID
			o.storageLocationID = location
			o.checkedInAt = &checkedInAt
			o.checkedInBy = &checkedInBy
		}, "Checked in at depot, shelf " + location, nil

	case DeliveryFailed:
		return func() {
			o.agentID = nil
			if location != "" {
				o.storageLocationID = location
			}
		}, "Back at depot for a new delivery attempt", nil

	default:
		return func() {
			if location != "" {
				o.storageLocationID = location
			}
		}, "Depot issue resolved", nil
	}
}

func (o *Order) defaultLocation(status Status) string {
	switch status { //nolint:exhaustive // other statuses have no default label
	case PickedUp, AtDepot, DepotIssue:
		if o.depotID != nil && o.storageLocationID != "" {
			return "depot " + o.depotID.String() + " / " + o.storageLocationID
		}
		return ""
	case OutForDelivery, Delivered, DeliveryFailed:
		return o.shippingAddress.City()
	default:
		return ""
	}
}

func (o *Order) raise(t EventType, previous Status, actor Actor, at time.Time, attributes map[string]string) {
	o.events = append(o.events, Event{
		ID:             kernel.NewUUID(),
		Type:           t,
		OrderID:        o.id,
		TrackingNumber: o.trackingNumber,
		Status:         o.status,
		PreviousStatus: previous,
		ActorID:        actor.UserID,
		ActorRole:      actor.Role,
		OccurredAt:     at,
		Attributes:     attributes,
	})
}

func requireAgent(payload Payload) (kernel.UUID, error) {
	if payload.AgentID == nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError("agentId")
	}
	if err := payload.AgentID.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	return *payload.AgentID, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParties(customerID, sellerID kernel.UUID) error {
	if err := errors.Join(customerID.Validate(), sellerID.Validate()); err != nil {
		return err
	}
	o.customerID = customerID
	o.sellerID = sellerID
	return nil
}

func (o *Order) setItems(items []Item, deliveryFee kernel.Money) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
		if item.Quantity < 1 {
			return errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, maxItemQuantity)
		}
		subtotal = subtotal.Add(item.LineTotal())
	}

	o.items = slices.Clone(items)
	o.subtotal = subtotal
	o.deliveryFee = deliveryFee
	o.total = subtotal.Add(deliveryFee)
	return nil
}

func (o *Order) setShipping(address kernel.Address, method DeliveryMethod, pickupPointID *kernel.UUID) error {
	if err := address.Validate(); err != nil {
		return err
	}
	if _, err := ParseDeliveryMethod(string(method)); err != nil {
		return err
	}
	if method == DeliveryPickup && pickupPointID == nil {
		return errs.NewValueIsRequiredError("pickupPointId")
	}
	if method == DeliveryHomeDelivery && pickupPointID != nil {
		return errs.NewValueIsInvalidErrorWithCause("pickupPointId",
			errors.New("home delivery orders do not have a pickup point"))
	}

	o.shippingAddress = address
	o.deliveryMethod = method
	o.pickupPointID = copyID(pickupPointID)
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
