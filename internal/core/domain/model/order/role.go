package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Role is the authenticated role of whoever triggers a transition.
type Role string

const (
	RoleDeliveryAgent Role = "delivery_agent"
	RoleDepotAgent    Role = "depot_agent"
	RoleDepotManager  Role = "depot_manager"
	RoleSeller        Role = "seller"
	RoleCustomer      Role = "customer"
	RoleSuperadmin    Role = "superadmin"
)

// AllRoles returns every known role.
func AllRoles() []Role {
	return []Role{RoleDeliveryAgent, RoleDepotAgent, RoleDepotManager, RoleSeller, RoleCustomer, RoleSuperadmin}
}

// ParseRole validates a role string coming from the auth collaborator.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	for _, known := range AllRoles() {
		if r == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
}

func (r Role) String() string {
	return string(r)
}

// Actor is the identity supplied by the auth collaborator. It is trusted as is.
type Actor struct {
	UserID kernel.UUID
	Role   Role
}

// NewActor validates both parts of the identity.
func NewActor(userID kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{UserID: userID, Role: role}, nil
}

func (a Actor) Validate() error {
	return errors.Join(a.UserID.Validate(), a.Role.Validate())
}
