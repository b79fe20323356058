package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/depot"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

type NewOrder struct {
	TrackingNumber  string  `json:"trackingNumber,omitempty"`
	CustomerID      string  `json:"customerId,omitempty"`
	SellerID        string  `json:"sellerId"`
	Items           []Item  `json:"items"`
	DeliveryFee     string  `json:"deliveryFee"`
	ShippingAddress Address `json:"shippingAddress"`
	DeliveryMethod  string  `json:"deliveryMethod"`
	PickupPointID   *string `json:"pickupPointId,omitempty"`
}

type Transition struct {
	Status         string `json:"status"`
	ExpectedStatus string `json:"expectedStatus,omitempty"`
	RecipientName  string `json:"recipientName,omitempty"`
	Location       string `json:"location,omitempty"`
	Detail         string `json:"detail,omitempty"`
}

type CheckIn struct {
	StorageLocationID string `json:"storageLocationId"`
}

type CheckOut struct {
	AgentID *string `json:"agentId,omitempty"`
}

type NewDiscrepancy struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

type Assignment struct {
	AgentID string `json:"agentId"`
}

type Scan struct {
	TrackingNumber string `json:"trackingNumber"`
}

type NewDeliveryFailure struct {
	Reason  string `json:"reason"`
	Details string `json:"details,omitempty"`
}

type Reroute struct {
	StorageLocationID string `json:"storageLocationId,omitempty"`
}

type NewRefundRequest struct {
	Reason       string   `json:"reason"`
	EvidenceURLs []string `json:"evidenceUrls,omitempty"`
}

type NewDisputeMessage struct {
	Message string `json:"message"`
}

type AvailabilityUpdate struct {
	Availability string `json:"availability"`
}

type NewAgent struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Role    string  `json:"role"`
	ZoneID  *string `json:"zoneId,omitempty"`
	DepotID *string `json:"depotId,omitempty"`
}

type NewDepot struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	ZoneID    *string  `json:"zoneId,omitempty"`
	ManagerID *string  `json:"managerId,omitempty"`
	Layout    []string `json:"layout,omitempty"`
}

type TrackingEvent struct {
	Status   string    `json:"status"`
	At       time.Time `json:"at"`
	Location string    `json:"location,omitempty"`
	Detail   string    `json:"detail,omitempty"`
}

type StatusChange struct {
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
	ChangedBy string    `json:"changedBy"`
	Role      string    `json:"role"`
}

type Discrepancy struct {
	Kind       string    `json:"kind"`
	Reason     string    `json:"reason"`
	Blocking   bool      `json:"blocking"`
	ReportedAt time.Time `json:"reportedAt"`
	ReportedBy string    `json:"reportedBy"`
}

type DeliveryFailure struct {
	Reason     string    `json:"reason"`
	Details    string    `json:"details,omitempty"`
	ReportedAt time.Time `json:"reportedAt"`
	ReportedBy string    `json:"reportedBy"`
}

type RefundRequest struct {
	Reason       string    `json:"reason"`
	EvidenceURLs []string  `json:"evidenceUrls"`
	RequestedAt  time.Time `json:"requestedAt"`
	RequestedBy  string    `json:"requestedBy"`
}

type DisputeMessage struct {
	AuthorID   string    `json:"authorId"`
	AuthorRole string    `json:"authorRole"`
	Message    string    `json:"message"`
	At         time.Time `json:"at"`
}

type Order struct {
	ID             string `json:"id"`
	TrackingNumber string `json:"trackingNumber"`
	CustomerID     string `json:"customerId"`
	SellerID       string `json:"sellerId"`

	Items       []Item `json:"items"`
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"deliveryFee"`
	Total       string `json:"total"`

	ShippingAddress Address `json:"shippingAddress"`
	DeliveryMethod  string  `json:"deliveryMethod"`
	PickupPointID   *string `json:"pickupPointId,omitempty"`

	Status       string   `json:"status"`
	Version      int      `json:"version"`
	NextStatuses []string `json:"nextStatuses"`

	AgentID           *string    `json:"agentId,omitempty"`
	DepotID           *string    `json:"depotId,omitempty"`
	StorageLocationID string     `json:"storageLocationId,omitempty"`
	CheckedInAt       *time.Time `json:"checkedInAt,omitempty"`

	TrackingHistory []TrackingEvent  `json:"trackingHistory"`
	StatusChangeLog []StatusChange   `json:"statusChangeLog"`
	Discrepancy     *Discrepancy     `json:"discrepancy,omitempty"`
	DeliveryFailure *DeliveryFailure `json:"deliveryFailure,omitempty"`
	RefundRequest   *RefundRequest   `json:"refundRequest,omitempty"`
	DisputeLog      []DisputeMessage `json:"disputeLog"`

	CreatedAt time.Time `json:"createdAt"`
}

type DepotOrder struct {
	ID                string     `json:"id"`
	TrackingNumber    string     `json:"trackingNumber"`
	Status            string     `json:"status"`
	StorageLocationID string     `json:"storageLocationId,omitempty"`
	CheckedInAt       *time.Time `json:"checkedInAt,omitempty"`
	AgentID           *string    `json:"agentId,omitempty"`
}

type Candidate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	ZoneID string `json:"zoneId"`
}

type Agent struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Availability string  `json:"availability"`
	ZoneID       *string `json:"zoneId,omitempty"`
	DepotID      *string `json:"depotId,omitempty"`
}

type Depot struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ZoneID    *string  `json:"zoneId,omitempty"`
	ManagerID *string  `json:"managerId,omitempty"`
	Layout    []string `json:"layout"`
}

func toOrder(d queries.OrderDetails) Order {
	resp := Order{
		ID:             d.ID.String(),
		TrackingNumber: d.TrackingNumber,
		CustomerID:     d.CustomerID.String(),
		SellerID:       d.SellerID.String(),
		Items:          make([]Item, 0, len(d.Items)),
		Subtotal:       d.Subtotal.String(),
		DeliveryFee:    d.DeliveryFee.String(),
		Total:          d.Total.String(),
		ShippingAddress: Address{
			Street:     d.ShippingAddress.Street(),
			City:       d.ShippingAddress.City(),
			PostalCode: d.ShippingAddress.PostalCode(),
		},
		DeliveryMethod:    string(d.DeliveryMethod),
		PickupPointID:     idString(d.PickupPointID),
		Status:            d.Status.String(),
		Version:           d.Version,
		NextStatuses:      make([]string, 0, len(d.NextStatuses)),
		AgentID:           idString(d.AgentID),
		DepotID:           idString(d.DepotID),
		StorageLocationID: d.StorageLocationID,
		CheckedInAt:       d.CheckedInAt,
		TrackingHistory:   make([]TrackingEvent, 0, len(d.TrackingHistory)),
		StatusChangeLog:   make([]StatusChange, 0, len(d.StatusChangeLog)),
		DisputeLog:        make([]DisputeMessage, 0, len(d.DisputeLog)),
		CreatedAt:         d.CreatedAt,
	}

	for _, i := range d.Items {
		resp.Items = append(resp.Items, Item{
			ProductID: i.ProductID.String(),
			Name:      i.Name,
			Quantity:  i.Quantity,
			UnitPrice: i.UnitPrice.String(),
		})
	}
	for _, s := range d.NextStatuses {
		resp.NextStatuses = append(resp.NextStatuses, s.String())
	}
	for _, e := range d.TrackingHistory {
		resp.TrackingHistory = append(resp.TrackingHistory, TrackingEvent{
			Status:   e.Status.String(),
			At:       e.At,
			Location: e.Location,
			Detail:   e.Detail,
		})
	}
	for _, c := range d.StatusChangeLog {
		resp.StatusChangeLog = append(resp.StatusChangeLog, StatusChange{
			Status:    c.Status.String(),
			At:        c.At,
			ChangedBy: c.ChangedBy.String(),
			Role:      c.Role.String(),
		})
	}
	for _, m := range d.DisputeLog {
		resp.DisputeLog = append(resp.DisputeLog, DisputeMessage{
			AuthorID:   m.AuthorID.String(),
			AuthorRole: m.AuthorRole.String(),
			Message:    m.Message,
			At:         m.At,
		})
	}

	if x := d.Discrepancy; x != nil {
		resp.Discrepancy = &Discrepancy{
			Kind:       string(x.Kind),
			Reason:     x.Reason,
			Blocking:   x.Blocking,
			ReportedAt: x.ReportedAt,
			ReportedBy: x.ReportedBy.String(),
		}
	}
	if x := d.DeliveryFailure; x != nil {
		resp.DeliveryFailure = &DeliveryFailure{
			Reason:     string(x.Reason),
			Details:    x.Details,
			ReportedAt: x.ReportedAt,
			ReportedBy: x.ReportedBy.String(),
		}
	}
	if x := d.RefundRequest; x != nil {
		resp.RefundRequest = &RefundRequest{
			Reason:       x.Reason,
			EvidenceURLs: append([]string{}, x.EvidenceURLs...),
			RequestedAt:  x.RequestedAt,
			RequestedBy:  x.RequestedBy.String(),
		}
	}
	return resp
}

func toOrderFromAggregate(o *order.Order) Order {
	return toOrder(queries.NewOrderDetails(o))
}

func toAgent(a *agent.Agent) Agent {
	return Agent{
		ID:           a.ID().String(),
		Name:         a.Name(),
		Role:         a.Role().String(),
		Availability: a.Availability().String(),
		ZoneID:       idString(a.ZoneID()),
		DepotID:      idString(a.DepotID()),
	}
}

func toDepot(d *depot.Depot) Depot {
	return Depot{
		ID:        d.ID().String(),
		Name:      d.Name(),
		ZoneID:    idString(d.ZoneID()),
		ManagerID: idString(d.ManagerID()),
		Layout:    append([]string{}, d.Layout()...),
	}
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
