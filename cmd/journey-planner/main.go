package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	lib "github.com/ourenbus/journey-planner"
	"github.com/ourenbus/journey-planner/config"
	"github.com/ourenbus/journey-planner/db"
	"github.com/ourenbus/journey-planner/gtfs"
	"github.com/ourenbus/journey-planner/journey"
	"github.com/ourenbus/journey-planner/metrics"
	"github.com/ourenbus/journey-planner/planner"
	"github.com/ourenbus/journey-planner/utils"
)

func main() {
	mode := flag.String("mode", "plan", "plan|serve")
	from := flag.String("from", "", "origin as lat,lon")
	to := flag.String("to", "", "destination as lat,lon")
	at := flag.String("at", "", "departure time of day HH:MM:SS (default: now)")
	staticURL := flag.String("gtfs", "", "GTFS zip URL or path (overrides config)")
	flag.Parse()

	lib.InitLogging()
	cfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if *staticURL != "" {
		cfg.GTFS.StaticURL = *staticURL
	}

	idx, err := loadSchedule(cfg)
	if err != nil {
		log.Fatalf("schedule load error: %v", err)
	}
	st := idx.Stats()
	log.Printf("schedule loaded: %d stops, %d routes, %d trips, %d stop times",
		st.Stops, st.Routes, st.Trips, st.StopTimes)

	switch *mode {
	case "serve":
		srv := lib.NewServer(cfg, idx, metrics.NewCollector())
		srv.Start()
		srv.HandleGracefulShutdown()
	case "plan":
		origin, err := parsePoint(*from)
		if err != nil {
			log.Fatalf("invalid -from: %v", err)
		}
		destination, err := parsePoint(*to)
		if err != nil {
			log.Fatalf("invalid -to: %v", err)
		}
		now := time.Now()
		if *at != "" {
			sec, err := utils.ParseGTFSTime(*at)
			if err != nil {
				log.Fatalf("invalid -at: %v", err)
			}
			now = utils.ClockTime(now, sec)
		}

		p := planner.New(idx, planner.OptionsFromConfig(cfg.Planner))
		j, err := p.PlanJourney(origin, destination, now)
		if err != nil {
			if errors.Is(err, planner.ErrNoRoute) {
				fmt.Fprintln(os.Stderr, "no itinerary found")
				os.Exit(1)
			}
			log.Fatalf("plan error: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(j)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func loadSchedule(cfg config.AppConfig) (*gtfs.Index, error) {
	if cfg.Database.URL != "" {
		sqlDB, err := db.Open(cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		defer sqlDB.Close()
		ctx := context.Background()
		if err := db.Ping(ctx, sqlDB); err != nil {
			return nil, err
		}
		return db.LoadIndex(ctx, sqlDB)
	}
	return gtfs.NewIndexFromConfig(cfg.GTFS)
}

func parsePoint(s string) (journey.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return journey.Point{}, fmt.Errorf("want lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return journey.Point{}, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return journey.Point{}, err
	}
	return journey.Point{Lat: lat, Lon: lon}, nil
}
