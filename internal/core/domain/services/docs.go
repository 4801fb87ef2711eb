// Package services contains stateless domain services that implement business
// rules spanning the order aggregate and the acting parties.
//
// AuthorizationPolicy is the single declarative table of who may move an order
// between which statuses. Centralizing the rule set makes it exhaustively
// enumerable and testable instead of being re-derived at every call site.
package services
