/*
Package gtfs provides GTFS static schedule loading and indexing.

The Index is an immutable in-memory snapshot of the published timetable:
stops, routes, trips, stop visits, service calendars and calendar-date
exceptions. Build it once at startup and share it by reference; all query
methods are read-only and safe for concurrent callers.

Load from a zip (local path or URL):

	idx, err := gtfs.NewIndexFromConfig(cfg.GTFS)
	if err != nil {
	    log.Fatal(err)
	}
	if !idx.HasSchedule() {
	    // caller must fall back to another routing strategy
	}

The db package can populate the same Index from a GTFS-imported Postgres
database instead of a zip.
*/
package gtfs
