// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
//
// The order row carries the current state; the tracking history, the status change
// log and the dispute log live in child tables keyed by order id and sequence.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and version together form the compare-and-swap condition of every write.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingNumber string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID       uuid.UUID `gorm:"type:uuid;not null;index"`

	Items       []ItemDTO       `gorm:"type:jsonb;serializer:json;not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total       decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	Shipping       AddressDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	DeliveryMethod string     `gorm:"type:varchar(32);not null"`
	PickupPointID  *uuid.UUID `gorm:"type:uuid"`

	Status             int        `gorm:"not null;index:idx_orders_depot_status,priority:2;index:idx_orders_status_since,priority:1"`
	Version            int        `gorm:"not null"`
	LastStatusChangeAt *time.Time `gorm:"index:idx_orders_status_since,priority:2"`

	AgentID           *uuid.UUID `gorm:"type:uuid;index"`
	DepotID           *uuid.UUID `gorm:"type:uuid;index:idx_orders_depot_status,priority:1"`
	StorageLocationID string     `gorm:"type:varchar(64)"`
	CheckedInAt       *time.Time
	CheckedInBy       *uuid.UUID `gorm:"type:uuid"`

	Discrepancy     *DiscrepancyDTO     `gorm:"type:jsonb;serializer:json"`
	DeliveryFailure *DeliveryFailureDTO `gorm:"type:jsonb;serializer:json"`
	RefundRequest   *RefundRequestDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	TrackingEvents []TrackingEventDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusChanges  []StatusChangeDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Disputes       []DisputeMessageDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded shipping address within the order table.
type AddressDTO struct {
	Street     string `gorm:"type:varchar(255);not null"`
	City       string `gorm:"type:varchar(128);not null"`
	PostalCode string `gorm:"type:varchar(16)"`
}

// ItemDTO is one checkout line, stored as JSON inside the order row.
type ItemDTO struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// DiscrepancyDTO is the JSON form of the depot discrepancy.
type DiscrepancyDTO struct {
	Kind       string    `json:"kind"`
	Reason     string    `json:"reason"`
	Blocking   bool      `json:"blocking"`
	ReportedAt time.Time `json:"reportedAt"`
	ReportedBy uuid.UUID `json:"reportedBy"`
}

// DeliveryFailureDTO is the JSON form of the failed attempt.
type DeliveryFailureDTO struct {
	Reason     string    `json:"reason"`
	Details    string    `json:"details"`
	ReportedAt time.Time `json:"reportedAt"`
	ReportedBy uuid.UUID `json:"reportedBy"`
}

// RefundRequestDTO lives in its own table so evidence URLs stay a native text array.
type RefundRequestDTO struct {
	OrderID      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Reason       string         `gorm:"type:text;not null"`
	EvidenceURLs pq.StringArray `gorm:"type:text[]"`
	RequestedAt  time.Time      `gorm:"not null"`
	RequestedBy  uuid.UUID      `gorm:"type:uuid;not null"`
}

func (RefundRequestDTO) TableName() string {
	return "order_refund_requests"
}

// TrackingEventDTO is one row of the customer-facing tracking history.
type TrackingEventDTO struct {
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq      int       `gorm:"primaryKey;autoIncrement:false"`
	Status   int       `gorm:"not null"`
	At       time.Time `gorm:"not null"`
	Location string    `gorm:"type:varchar(255)"`
	Detail   string    `gorm:"type:text"`
}

func (TrackingEventDTO) TableName() string {
	return "order_tracking_events"
}

// StatusChangeDTO is one row of the audit trail.
type StatusChangeDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey;autoIncrement:false"`
	Status    int       `gorm:"not null"`
	At        time.Time `gorm:"not null"`
	ChangedBy uuid.UUID `gorm:"type:uuid;not null"`
	Role      string    `gorm:"type:varchar(32);not null"`
}

func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

// DisputeMessageDTO is one dispute message. Disputes are appended outside the
// compare-and-swap, so rows get a database sequence instead of a ledger position.
type DisputeMessageDTO struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null"`
	AuthorRole string    `gorm:"type:varchar(32);not null"`
	Message    string    `gorm:"type:text;not null"`
	At         time.Time `gorm:"not null"`
}

func (DisputeMessageDTO) TableName() string {
	return "order_dispute_messages"
}

// Models lists every table of the package for AutoMigrate.
func Models() []any {
	return []any{
		&OrderDTO{}, &RefundRequestDTO{}, &TrackingEventDTO{}, &StatusChangeDTO{}, &DisputeMessageDTO{},
	}
}

// fromDomain converts an order domain aggregate to its database representation,
// ledgers included.
func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	id := s.ID.Bytes()

	items := make([]ItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, ItemDTO{
			ProductID: it.ProductID.Bytes(),
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.Amount(),
		})
	}

	dto := OrderDTO{
		ID:             id,
		TrackingNumber: s.TrackingNumber,
		CustomerID:     s.CustomerID.Bytes(),
		SellerID:       s.SellerID.Bytes(),
		Items:          items,
		Subtotal:       s.Subtotal.Amount(),
		DeliveryFee:    s.DeliveryFee.Amount(),
		Total:          s.Total.Amount(),
		Shipping: AddressDTO{
			Street:     s.ShippingAddress.Street(),
			City:       s.ShippingAddress.City(),
			PostalCode: s.ShippingAddress.PostalCode(),
		},
		DeliveryMethod:    string(s.DeliveryMethod),
		PickupPointID:     rawID(s.PickupPointID),
		Status:            int(s.Status),
		Version:           s.Version,
		AgentID:           rawID(s.AgentID),
		DepotID:           rawID(s.DepotID),
		StorageLocationID: s.StorageLocationID,
		CheckedInAt:       s.CheckedInAt,
		CheckedInBy:       rawID(s.CheckedInBy),
		CreatedAt:         s.CreatedAt,
	}

	if n := len(s.StatusChangeLog); n > 0 {
		at := s.StatusChangeLog[n-1].At
		dto.LastStatusChangeAt = &at
	}
	if d := s.Discrepancy; d != nil {
		dto.Discrepancy = &DiscrepancyDTO{
			Kind:       string(d.Kind),
			Reason:     d.Reason,
			Blocking:   d.Blocking,
			ReportedAt: d.ReportedAt,
			ReportedBy: d.ReportedBy.Bytes(),
		}
	}
	if f := s.DeliveryFailure; f != nil {
		dto.DeliveryFailure = &DeliveryFailureDTO{
			Reason:     string(f.Reason),
			Details:    f.Details,
			ReportedAt: f.ReportedAt,
			ReportedBy: f.ReportedBy.Bytes(),
		}
	}
	if r := s.RefundRequest; r != nil {
		dto.RefundRequest = &RefundRequestDTO{
			OrderID:      id,
			Reason:       r.Reason,
			EvidenceURLs: pq.StringArray(r.EvidenceURLs),
			RequestedAt:  r.RequestedAt,
			RequestedBy:  r.RequestedBy.Bytes(),
		}
	}

	for i, e := range s.TrackingHistory {
		dto.TrackingEvents = append(dto.TrackingEvents, TrackingEventDTO{
			OrderID:  id,
			Seq:      i + 1,
			Status:   int(e.Status),
			At:       e.At,
			Location: e.Location,
			Detail:   e.Detail,
		})
	}
	for i, c := range s.StatusChangeLog {
		dto.StatusChanges = append(dto.StatusChanges, StatusChangeDTO{
			OrderID:   id,
			Seq:       i + 1,
			Status:    int(c.Status),
			At:        c.At,
			ChangedBy: c.ChangedBy.Bytes(),
			Role:      string(c.Role),
		})
	}
	for _, m := range s.DisputeLog {
		dto.Disputes = append(dto.Disputes, disputeFromDomain(id, m))
	}

	return dto
}

func disputeFromDomain(orderID uuid.UUID, m order.DisputeMessage) DisputeMessageDTO {
	return DisputeMessageDTO{
		OrderID:    orderID,
		AuthorID:   m.AuthorID.Bytes(),
		AuthorRole: string(m.AuthorRole),
		Message:    m.Message,
		At:         m.At,
	}
}

// toDomain converts a database DTO, with its preloaded child rows, to an order
// domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(it.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, moneyErr := kernel.NewMoney(it.UnitPrice)
		if moneyErr != nil {
			return nil, moneyErr
		}
		items = append(items, order.Item{ProductID: productID, Name: it.Name, Quantity: it.Quantity, UnitPrice: price})
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}
	address, err := kernel.NewAddress(dto.Shipping.Street, dto.Shipping.City, dto.Shipping.PostalCode)
	if err != nil {
		return nil, err
	}

	s := order.Snapshot{
		ID:                id,
		TrackingNumber:    dto.TrackingNumber,
		CustomerID:        customerID,
		SellerID:          sellerID,
		Items:             items,
		Subtotal:          subtotal,
		DeliveryFee:       fee,
		Total:             total,
		ShippingAddress:   address,
		DeliveryMethod:    order.DeliveryMethod(dto.DeliveryMethod),
		PickupPointID:     optionalID(dto.PickupPointID),
		Status:            order.Status(dto.Status),
		Version:           dto.Version,
		AgentID:           optionalID(dto.AgentID),
		DepotID:           optionalID(dto.DepotID),
		StorageLocationID: dto.StorageLocationID,
		CheckedInAt:       dto.CheckedInAt,
		CheckedInBy:       optionalID(dto.CheckedInBy),
		CreatedAt:         dto.CreatedAt,
	}

	if d := dto.Discrepancy; d != nil {
		s.Discrepancy = &order.Discrepancy{
			Kind:       order.DiscrepancyKind(d.Kind),
			Reason:     d.Reason,
			Blocking:   d.Blocking,
			ReportedAt: d.ReportedAt,
			ReportedBy: mustID(d.ReportedBy),
		}
	}
	if f := dto.DeliveryFailure; f != nil {
		s.DeliveryFailure = &order.DeliveryFailure{
			Reason:     order.FailureReason(f.Reason),
			Details:    f.Details,
			ReportedAt: f.ReportedAt,
			ReportedBy: mustID(f.ReportedBy),
		}
	}
	if r := dto.RefundRequest; r != nil {
		s.RefundRequest = &order.RefundRequest{
			Reason:       r.Reason,
			EvidenceURLs: []string(r.EvidenceURLs),
			RequestedAt:  r.RequestedAt,
			RequestedBy:  mustID(r.RequestedBy),
		}
	}

	for _, e := range dto.TrackingEvents {
		s.TrackingHistory = append(s.TrackingHistory, order.TrackingEvent{
			Status:   order.Status(e.Status),
			At:       e.At,
			Location: e.Location,
			Detail:   e.Detail,
		})
	}
	for _, c := range dto.StatusChanges {
		s.StatusChangeLog = append(s.StatusChangeLog, order.StatusChange{
			Status:    order.Status(c.Status),
			At:        c.At,
			ChangedBy: mustID(c.ChangedBy),
			Role:      order.Role(c.Role),
		})
	}
	for _, m := range dto.Disputes {
		s.DisputeLog = append(s.DisputeLog, order.DisputeMessage{
			AuthorID:   mustID(m.AuthorID),
			AuthorRole: order.Role(m.AuthorRole),
			Message:    m.Message,
			At:         m.At,
		})
	}

	return order.RestoreOrder(s)
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalID(id *uuid.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	k := mustID(*id)
	return &k
}

// mustID converts a column the database already holds as a valid uuid.
func mustID(id uuid.UUID) kernel.UUID {
	k, _ := kernel.UUIDFromBytes(id[:])
	return k
}
