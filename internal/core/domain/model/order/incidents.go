package order

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// DiscrepancyKind classifies what a depot agent found while handling a parcel.
type DiscrepancyKind string

const (
	DiscrepancyItemCountMismatch DiscrepancyKind = "item-count-mismatch"
	DiscrepancyDamagedSeal       DiscrepancyKind = "damaged-seal"
	DiscrepancyDamagedItem       DiscrepancyKind = "damaged-item"
	DiscrepancyLabelUnreadable   DiscrepancyKind = "label-unreadable"
	DiscrepancyPackagingWorn     DiscrepancyKind = "packaging-worn"
	DiscrepancyOther             DiscrepancyKind = "other"
)

var discrepancyKinds = []DiscrepancyKind{
	DiscrepancyItemCountMismatch, DiscrepancyDamagedSeal, DiscrepancyDamagedItem,
	DiscrepancyLabelUnreadable, DiscrepancyPackagingWorn, DiscrepancyOther,
}

// ParseDiscrepancyKind validates a kind coming from the depot scanner.
func ParseDiscrepancyKind(s string) (DiscrepancyKind, error) {
	k := DiscrepancyKind(s)
	if !slices.Contains(discrepancyKinds, k) {
		return "", errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a discrepancy kind", s))
	}
	return k, nil
}

// IsBlocking is the discrepancy policy: a blocking discrepancy moves the order to
// depot-issue, anything else is an advisory note that leaves the status untouched.
func (k DiscrepancyKind) IsBlocking() bool {
	switch k { //nolint:exhaustive // advisory kinds fall through
	case DiscrepancyItemCountMismatch, DiscrepancyDamagedSeal, DiscrepancyDamagedItem:
		return true
	default:
		return false
	}
}

// Discrepancy is attached by the depot workflow.
type Discrepancy struct {
	Kind       DiscrepancyKind
	Reason     string
	Blocking   bool
	ReportedAt time.Time
	ReportedBy kernel.UUID
}

// FailureReason is why a delivery attempt failed at the customer's door.
type FailureReason string

const (
	FailureClientAbsent  FailureReason = "client-absent"
	FailureWrongAddress  FailureReason = "adresse-erronee"
	FailureParcelRefused FailureReason = "colis-refuse"
)

// ParseFailureReason accepts only the three reasons the delivery app offers.
func ParseFailureReason(s string) (FailureReason, error) {
	r := FailureReason(s)
	switch r {
	case FailureClientAbsent, FailureWrongAddress, FailureParcelRefused:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("failureReason", fmt.Errorf("%q is not a failure reason", s))
	}
}

// DeliveryFailure is attached when an order enters delivery-failed.
type DeliveryFailure struct {
	Reason     FailureReason
	Details    string
	ReportedAt time.Time
	ReportedBy kernel.UUID
}

// RefundRequest is attached when a customer asks for a refund on a delivered order.
type RefundRequest struct {
	Reason       string
	EvidenceURLs []string
	RequestedAt  time.Time
	RequestedBy  kernel.UUID
}

// DisputeMessage is a free-form message any party may append at any status.
type DisputeMessage struct {
	AuthorID   kernel.UUID
	AuthorRole Role
	Message    string
	At         time.Time
}

// NewDisputeMessage validates the author and trims the message.
func NewDisputeMessage(author Actor, message string, at time.Time) (DisputeMessage, error) {
	if err := author.Validate(); err != nil {
		return DisputeMessage{}, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return DisputeMessage{}, errs.NewValueIsRequiredError("message")
	}
	return DisputeMessage{AuthorID: author.UserID, AuthorRole: author.Role, Message: message, At: at}, nil
}
