package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ourenbus/journey-planner/gtfs"
	"github.com/ourenbus/journey-planner/utils"
)

// LoadIndex builds a gtfs.Index snapshot from a GTFS-imported Postgres
// database (standard table layout: stops, routes, trips, stop_times,
// calendar, calendar_dates). The snapshot is independent of the connection
// once built, which gives one planning call snapshot consistency for free.
func LoadIndex(ctx context.Context, sqlDB *sql.DB) (*gtfs.Index, error) {
	idx := gtfs.NewIndex()
	if err := loadStops(ctx, sqlDB, idx); err != nil {
		return nil, fmt.Errorf("load stops: %w", err)
	}
	if err := loadRoutes(ctx, sqlDB, idx); err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	if err := loadTrips(ctx, sqlDB, idx); err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}
	if err := loadStopTimes(ctx, sqlDB, idx); err != nil {
		return nil, fmt.Errorf("load stop_times: %w", err)
	}
	if err := loadCalendars(ctx, sqlDB, idx); err != nil {
		return nil, fmt.Errorf("load calendar: %w", err)
	}
	if err := loadCalendarDates(ctx, sqlDB, idx); err != nil {
		return nil, fmt.Errorf("load calendar_dates: %w", err)
	}
	return idx, nil
}

func loadStops(ctx context.Context, sqlDB *sql.DB, idx *gtfs.Index) error {
	q := `SELECT stop_id, COALESCE(stop_name,''), stop_lat, stop_lon FROM stops`
	rows, err := sqlDB.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var s gtfs.Stop
		if err := rows.Scan(&s.ID, &s.Name, &s.Lat, &s.Lon); err != nil {
			return err
		}
		idx.AddStop(s)
	}
	return rows.Err()
}

func loadRoutes(ctx context.Context, sqlDB *sql.DB, idx *gtfs.Index) error {
	q := `SELECT route_id, COALESCE(route_short_name,''), COALESCE(route_long_name,''), COALESCE(route_color,'') FROM routes`
	rows, err := sqlDB.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var r gtfs.Route
		if err := rows.Scan(&r.ID, &r.ShortName, &r.LongName, &r.Color); err != nil {
			return err
		}
		idx.AddRoute(r)
	}
	return rows.Err()
}

func loadTrips(ctx context.Context, sqlDB *sql.DB, idx *gtfs.Index) error {
	q := `SELECT trip_id, route_id, service_id, COALESCE(trip_headsign,'') FROM trips`
	rows, err := sqlDB.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var t gtfs.Trip
		if err := rows.Scan(&t.ID, &t.RouteID, &t.ServiceID, &t.Headsign); err != nil {
			return err
		}
		idx.AddTrip(t)
	}
	return rows.Err()
}

func loadStopTimes(ctx context.Context, sqlDB *sql.DB, idx *gtfs.Index) error {
	// arrival_time/departure_time may be interval or text depending on the
	// importer; cast to text and parse the GTFS way (hours may exceed 24).
	q := `SELECT trip_id, stop_id, COALESCE(arrival_time::text,''), COALESCE(departure_time::text,''), stop_sequence
          FROM stop_times ORDER BY trip_id, stop_sequence`
	rows, err := sqlDB.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var tripID, stopID, arrS, depS string
		var seq int
		if err := rows.Scan(&tripID, &stopID, &arrS, &depS, &seq); err != nil {
			return err
		}
		arr, err := utils.ParseGTFSTime(arrS)
		if err != nil {
			continue
		}
		dep, err := utils.ParseGTFSTime(depS)
		if err != nil {
			dep = arr
		}
		idx.AddStopTime(gtfs.StopTime{
			TripID:       tripID,
			StopID:       stopID,
			ArrivalSec:   arr,
			DepartureSec: dep,
			Seq:          seq,
		})
	}
	return rows.Err()
}

func loadCalendars(ctx context.Context, sqlDB *sql.DB, idx *gtfs.Index) error {
	// Weekday columns may be boolean, integer or an availability enum; date
	// columns may be date or integer. Normalize both in SQL.
	q := `SELECT service_id,
                 monday::text IN ('1','t','true','available'),
                 tuesday::text IN ('1','t','true','available'),
                 wednesday::text IN ('1','t','true','available'),
                 thursday::text IN ('1','t','true','available'),
                 friday::text IN ('1','t','true','available'),
                 saturday::text IN ('1','t','true','available'),
                 sunday::text IN ('1','t','true','available'),
                 to_char(start_date::date,'YYYYMMDD')::int,
                 to_char(end_date::date,'YYYYMMDD')::int
          FROM calendar`
	rows, err := sqlDB.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c gtfs.Calendar
		if err := rows.Scan(&c.ServiceID, &c.Monday, &c.Tuesday, &c.Wednesday, &c.Thursday,
			&c.Friday, &c.Saturday, &c.Sunday, &c.StartDate, &c.EndDate); err != nil {
			return err
		}
		idx.AddCalendar(c)
	}
	return rows.Err()
}

func loadCalendarDates(ctx context.Context, sqlDB *sql.DB, idx *gtfs.Index) error {
	q := `SELECT service_id,
                 to_char(date::date,'YYYYMMDD')::int,
                 CASE WHEN exception_type::text IN ('1','added') THEN 1 ELSE 2 END
          FROM calendar_dates`
	rows, err := sqlDB.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cd gtfs.CalendarDate
		if err := rows.Scan(&cd.ServiceID, &cd.Date, &cd.Exception); err != nil {
			return err
		}
		idx.AddCalendarDate(cd)
	}
	return rows.Err()
}
