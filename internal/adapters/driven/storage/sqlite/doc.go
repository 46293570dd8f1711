// Package sqlite persists the catalog and booking choices in a single
// SQLite file using the pure Go modernc.org/sqlite driver.
//
// One Store owns the connection and hands out a CatalogStore (services,
// ordered tiers, tier features and feature display names) and a
// BookingStore (recorded tier choices). The file lives at
// <data dir>/tierdeck.db, with ~/.tierdeck/data as the default data dir.
//
// The schema is applied from the embedded migrations/ directory on open;
// applied versions are tracked in schema_migrations. The connection runs
// in WAL mode with foreign keys enabled.
package sqlite
