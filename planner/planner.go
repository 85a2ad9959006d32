package planner

import (
	"errors"
	"math"
	"time"

	"github.com/ourenbus/journey-planner/config"
	"github.com/ourenbus/journey-planner/gtfs"
	"github.com/ourenbus/journey-planner/journey"
	"github.com/ourenbus/journey-planner/utils"
)

var (
	// ErrNoSchedule reports a violated precondition: planning was attempted
	// on an empty schedule snapshot.
	ErrNoSchedule = errors.New("planner: no schedule loaded")

	// ErrNoRoute reports the normal empty outcome: no itinerary satisfies
	// the constraints. The caller decides the fallback.
	ErrNoRoute = errors.New("planner: no itinerary found")
)

// Options are the journey search parameters. Zero values fall back to the
// documented defaults.
type Options struct {
	MaxWaitSeconds   int     // maximum wait per boarding, default 600
	NearestStopCount int     // candidate stops per endpoint, default 20
	MaxTransfers     int     // vehicle changes tried per stop pair, default 2
	WalkSpeedMPM     float64 // walking speed in meters/minute, default 80
}

// OptionsFromConfig maps the planner configuration section onto Options.
func OptionsFromConfig(cfg config.PlannerConfig) Options {
	return Options{
		MaxWaitSeconds:   cfg.MaxWaitSeconds,
		NearestStopCount: cfg.NearestStopCount,
		MaxTransfers:     cfg.MaxTransfers,
		WalkSpeedMPM:     cfg.WalkSpeedMPM,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxWaitSeconds <= 0 {
		o.MaxWaitSeconds = config.DefaultMaxWaitSeconds
	}
	if o.NearestStopCount <= 0 {
		o.NearestStopCount = config.DefaultNearestStopCount
	}
	if o.MaxTransfers <= 0 {
		o.MaxTransfers = config.DefaultMaxTransfers
	}
	if o.MaxTransfers > 2 {
		o.MaxTransfers = 2
	}
	if o.WalkSpeedMPM <= 0 {
		o.WalkSpeedMPM = config.DefaultWalkSpeedMPM
	}
	return o
}

// Planner searches a schedule snapshot for journeys. It holds no mutable
// state; one Planner serves concurrent callers.
type Planner struct {
	idx  *gtfs.Index
	opts Options
}

// New creates a planner over the given snapshot.
func New(idx *gtfs.Index, opts Options) *Planner {
	return &Planner{idx: idx, opts: opts.withDefaults()}
}

// HasSchedule reports whether the snapshot holds a usable schedule. When it
// returns false PlanJourney must not be called.
func (p *Planner) HasSchedule() bool {
	return p.idx != nil && p.idx.HasSchedule()
}

// PlanJourney finds a journey from origin to destination departing at now.
// Candidate stop pairs are tried nearest-first (origin candidates outer,
// destination candidates inner), each pair with zero, then one, then two
// transfers; the first pair yielding any itinerary wins. Returns ErrNoRoute
// when all pairs are exhausted, ErrNoSchedule when no schedule is loaded.
func (p *Planner) PlanJourney(origin, destination journey.Point, now time.Time) (*journey.Journey, error) {
	if !p.HasSchedule() {
		return nil, ErrNoSchedule
	}
	nowSec := utils.SecondsOfDay(now)

	stops := p.idx.AllStops()
	originStops := NearestStops(stops, origin.Lat, origin.Lon, p.opts.NearestStopCount)
	destStops := NearestStops(stops, destination.Lat, destination.Lon, p.opts.NearestStopCount)

	for _, originStop := range originStops {
		walkMin := p.walkMinutes(origin.Lat, origin.Lon, originStop.Lat, originStop.Lon)
		earliestBoard := nowSec + walkMin*60
		for _, destStop := range destStops {
			if destStop.ID == originStop.ID {
				continue
			}
			for transfers := 0; transfers <= p.opts.MaxTransfers; transfers++ {
				chain := p.bestChain(originStop, destStop, earliestBoard, now, transfers)
				if chain == nil {
					continue
				}
				return p.assemble(origin, destination, chain, now), nil
			}
		}
	}
	return nil, ErrNoRoute
}

func (p *Planner) walkMinutes(lat1, lon1, lat2, lon2 float64) int {
	m := utils.DistanceMeters(lat1, lon1, lat2, lon2)
	min := int(math.Round(m / p.opts.WalkSpeedMPM))
	if min < 1 {
		return 1
	}
	return min
}
