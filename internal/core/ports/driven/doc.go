// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CatalogStore: Service catalog persistence
//   - BookingStore: Recorded tier selections
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CatalogSource: Fetches the catalog (file or marketplace API). Without it,
//     only the persisted catalog is available and refresh is disabled.
//   - CatalogWatcher: Signals catalog changes. Without it, reloads are manual.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
