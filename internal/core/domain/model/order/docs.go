// Package order provides domain entities and business logic for order lifecycle
// management in the tailoring marketplace. It implements the Order aggregate root
// with state transitions, actor roles, and the append-only transition history.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, parties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Role: The actor role (customer or tailor) attempting a transition
//   - ServiceType: The fixed vocabulary of tailoring services
//   - HistoryEntry: An immutable audit record of one accepted transition
//
// Key business rules:
//   - Status follows the workflow: pending -> accepted -> in_progress -> ready -> completed
//   - cancelled is reachable from pending, accepted, and in_progress only
//   - completed and cancelled are terminal: no outgoing transitions exist
//   - Orders are never deleted; cancellation and completion are states
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
