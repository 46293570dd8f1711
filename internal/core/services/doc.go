// Package services implements the driving port interfaces.
//
// The tier selection store and carousel controller hold the browsing
// state and never fail; catalog, booking and settings services
// orchestrate calls to driven ports (adapters) and return wrapped
// domain errors.
package services
