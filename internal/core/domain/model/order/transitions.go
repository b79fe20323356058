package order

import "slices"

type transitionKey struct {
	from Status
	to   Status
}

// transitionTable is the single source of truth for legal status changes and the
// roles allowed to request them. Pairs absent from the table are illegal for everyone.
//
// at-depot -> out-for-delivery is open to delivery agents only for the self-service
// scan, where the dispatcher checks zone and availability before the transition.
var transitionTable = map[transitionKey][]Role{
	{Confirmed, ReadyForPickup}:      {RoleSeller, RoleSuperadmin},
	{Confirmed, Cancelled}:           {RoleCustomer, RoleSuperadmin},
	{ReadyForPickup, Cancelled}:      {RoleSeller, RoleSuperadmin},
	{ReadyForPickup, PickedUp}:       {RoleDeliveryAgent, RoleSuperadmin},
	{PickedUp, AtDepot}:              {RoleDepotAgent, RoleDepotManager, RoleSuperadmin},
	{PickedUp, DepotIssue}:           {RoleDepotAgent, RoleDepotManager, RoleSuperadmin},
	{AtDepot, OutForDelivery}:        {RoleDepotManager, RoleSuperadmin, RoleDeliveryAgent},
	{AtDepot, DepotIssue}:            {RoleDepotAgent, RoleDepotManager, RoleSuperadmin},
	{DepotIssue, AtDepot}:            {RoleDepotManager, RoleSuperadmin},
	{DepotIssue, Returned}:           {RoleDepotManager, RoleSuperadmin},
	{OutForDelivery, Delivered}:      {RoleDeliveryAgent, RoleSuperadmin},
	{OutForDelivery, DeliveryFailed}: {RoleDeliveryAgent, RoleSuperadmin},
	{DeliveryFailed, AtDepot}:        {RoleDepotManager, RoleSuperadmin},
	{DeliveryFailed, Returned}:       {RoleDepotManager, RoleSuperadmin},
	{Delivered, RefundRequested}:     {RoleCustomer},
	{RefundRequested, Refunded}:      {RoleSuperadmin},
}

// AllowedRoles returns the roles allowed to move an order from one status to another,
// and false when the pair is not a legal transition.
func AllowedRoles(from, to Status) ([]Role, bool) {
	roles, ok := transitionTable[transitionKey{from: from, to: to}]
	if !ok {
		return nil, false
	}
	return slices.Clone(roles), true
}

// CheckTransition applies the legality table: an absent pair yields
// IllegalTransitionError whatever the role, a present pair with a role outside the
// allowed set yields ForbiddenError.
func CheckTransition(from, to Status, role Role) error {
	roles, ok := transitionTable[transitionKey{from: from, to: to}]
	if !ok {
		return NewIllegalTransitionError(from, to)
	}
	if !slices.Contains(roles, role) {
		return NewForbiddenError(role, from, to, "role is not allowed for this transition")
	}
	return nil
}

// NextStatuses lists the statuses reachable from the given one, in declaration order.
func NextStatuses(from Status) []Status {
	next := make([]Status, 0)
	for _, to := range AllStatuses() {
		if _, ok := transitionTable[transitionKey{from: from, to: to}]; ok {
			next = append(next, to)
		}
	}
	return next
}
