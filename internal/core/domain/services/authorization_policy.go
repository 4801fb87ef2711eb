package services

import (
	"tailoring/internal/core/domain/model/order"
)

// AuthorizationPolicy is a domain service answering one question: may an
// actor in a given role move an order from its current status to a target
// status? The full rule set is a static table; ownership of the specific
// order is checked separately by the lifecycle engine before this policy
// is consulted.
//
// Permitted edges per role:
//
//	customer: pending->cancelled, accepted->cancelled, ready->completed
//	tailor:   pending->accepted, pending->cancelled, accepted->in_progress,
//	          accepted->cancelled, in_progress->ready, in_progress->cancelled
//
// The tailor deliberately has no edge into completed: that transition is
// reachable only through delivery-code verification, which models "the tailor
// confirms physical handoff only when the customer reveals the code". The
// customer completing ready->completed directly models remote receipt.
type AuthorizationPolicy struct{}

// NewAuthorizationPolicy creates a new AuthorizationPolicy instance.
func NewAuthorizationPolicy() AuthorizationPolicy {
	return AuthorizationPolicy{}
}

// permittedEdges returns the full authorization table.
func permittedEdges() map[order.Role]map[order.Status][]order.Status {
	return map[order.Role]map[order.Status][]order.Status{
		order.RoleCustomer: {
			order.Pending:  {order.Cancelled},
			order.Accepted: {order.Cancelled},
			order.Ready:    {order.Completed},
		},
		order.RoleTailor: {
			order.Pending:    {order.Accepted, order.Cancelled},
			order.Accepted:   {order.InProgress, order.Cancelled},
			order.InProgress: {order.Ready, order.Cancelled},
		},
	}
}

// Allows reports whether the role may request the from->to transition.
// Unknown roles and statuses fail closed.
func (AuthorizationPolicy) Allows(role order.Role, from order.Status, to order.Status) bool {
	for _, target := range permittedEdges()[role][from] {
		if target == to {
			return true
		}
	}
	return false
}

// AllowedTargets returns every target status the role may request from the
// given status. The result is nil when nothing is permitted.
func (AuthorizationPolicy) AllowedTargets(role order.Role, from order.Status) []order.Status {
	targets := permittedEdges()[role][from]
	if len(targets) == 0 {
		return nil
	}
	out := make([]order.Status, len(targets))
	copy(out, targets)
	return out
}
