// Package db loads a schedule snapshot from a GTFS-imported Postgres
// database, as an alternative to reading a GTFS zip directly.
package db
