package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/ourenbus/journey-planner/config"
	"github.com/ourenbus/journey-planner/utils"
)

// NewIndexFromConfig creates and loads a schedule index from configuration.
// The static source may be an http(s) URL or a local zip path.
func NewIndexFromConfig(cfg config.GTFSConfig) (*Index, error) {
	g := NewIndex()
	if cfg.StaticURL == "" {
		return g, nil
	}
	if strings.HasPrefix(cfg.StaticURL, "http://") || strings.HasPrefix(cfg.StaticURL, "https://") {
		if err := g.loadFromStaticZip(cfg.StaticURL); err != nil {
			return g, err
		}
		return g, nil
	}
	if err := g.loadFromLocalZip(cfg.StaticURL); err != nil {
		return g, err
	}
	return g, nil
}

func (g *Index) loadFromStaticZip(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch GTFS zip: unexpected status %s", resp.Status)
	}
	tmp, err := os.CreateTemp("", "gtfs-*.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return g.loadFromLocalZip(tmp.Name())
}

// loadFromLocalZip opens a local GTFS zip file and consumes required CSVs.
func (g *Index) loadFromLocalZip(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer zr.Close()
	for _, f := range zr.File {
		switch strings.ToLower(f.Name) {
		case "stops.txt", "routes.txt", "trips.txt", "stop_times.txt", "calendar.txt", "calendar_dates.txt":
			if err := g.consumeCSV(f); err != nil {
				return fmt.Errorf("consume %s: %w", f.Name, err)
			}
		}
	}
	return nil
}

func (g *Index) consumeCSV(f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) < 2 {
		return nil
	}
	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	field := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	switch strings.ToLower(f.Name) {
	case "stops.txt":
		sID := idx("stop_id")
		sN := idx("stop_name")
		sLat := idx("stop_lat")
		sLon := idx("stop_lon")
		if sID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			lat, _ := strconv.ParseFloat(field(row, sLat), 64)
			lon, _ := strconv.ParseFloat(field(row, sLon), 64)
			g.AddStop(Stop{
				ID:   field(row, sID),
				Name: field(row, sN),
				Lat:  lat,
				Lon:  lon,
			})
		}
	case "routes.txt":
		rID := idx("route_id")
		rSN := idx("route_short_name")
		rLN := idx("route_long_name")
		rC := idx("route_color")
		if rID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			g.AddRoute(Route{
				ID:        field(row, rID),
				ShortName: field(row, rSN),
				LongName:  field(row, rLN),
				Color:     field(row, rC),
			})
		}
	case "trips.txt":
		rID := idx("route_id")
		tID := idx("trip_id")
		svc := idx("service_id")
		hs := idx("trip_headsign")
		if tID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			g.AddTrip(Trip{
				ID:        field(row, tID),
				RouteID:   field(row, rID),
				ServiceID: field(row, svc),
				Headsign:  field(row, hs),
			})
		}
	case "stop_times.txt":
		tID := idx("trip_id")
		sID := idx("stop_id")
		sq := idx("stop_sequence")
		arr := idx("arrival_time")
		dep := idx("departure_time")
		if tID < 0 || sID < 0 || sq < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			seq, err := strconv.Atoi(field(row, sq))
			if err != nil {
				continue
			}
			arrSec, err := utils.ParseGTFSTime(field(row, arr))
			if err != nil {
				continue
			}
			depSec, err := utils.ParseGTFSTime(field(row, dep))
			if err != nil {
				depSec = arrSec
			}
			g.AddStopTime(StopTime{
				TripID:       field(row, tID),
				StopID:       field(row, sID),
				ArrivalSec:   arrSec,
				DepartureSec: depSec,
				Seq:          seq,
			})
		}
	case "calendar.txt":
		svc := idx("service_id")
		days := [7]int{idx("monday"), idx("tuesday"), idx("wednesday"), idx("thursday"), idx("friday"), idx("saturday"), idx("sunday")}
		start := idx("start_date")
		end := idx("end_date")
		if svc < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			startD, _ := strconv.Atoi(field(row, start))
			endD, _ := strconv.Atoi(field(row, end))
			g.AddCalendar(Calendar{
				ServiceID: field(row, svc),
				Monday:    field(row, days[0]) == "1",
				Tuesday:   field(row, days[1]) == "1",
				Wednesday: field(row, days[2]) == "1",
				Thursday:  field(row, days[3]) == "1",
				Friday:    field(row, days[4]) == "1",
				Saturday:  field(row, days[5]) == "1",
				Sunday:    field(row, days[6]) == "1",
				StartDate: startD,
				EndDate:   endD,
			})
		}
	case "calendar_dates.txt":
		svc := idx("service_id")
		date := idx("date")
		exc := idx("exception_type")
		if svc < 0 || date < 0 || exc < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			d, err := strconv.Atoi(field(row, date))
			if err != nil {
				continue
			}
			e, err := strconv.Atoi(field(row, exc))
			if err != nil {
				continue
			}
			g.AddCalendarDate(CalendarDate{
				ServiceID: field(row, svc),
				Date:      d,
				Exception: e,
			})
		}
	}
	return nil
}
