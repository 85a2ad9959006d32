package journeyplanner

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ourenbus/journey-planner/gtfs"
	"github.com/ourenbus/journey-planner/journey"
	"github.com/ourenbus/journey-planner/planner"
	"github.com/ourenbus/journey-planner/utils"
)

type healthResponse struct {
	Status      string     `json:"status"`
	HasSchedule bool       `json:"has_schedule"`
	Schedule    gtfs.Stats `json:"schedule"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:      "ok",
		HasSchedule: s.idx.HasSchedule(),
		Schedule:    s.idx.Stats(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// journeyRequest is the validated query surface of /api/journey.
type journeyRequest struct {
	FromLat float64 `validate:"latitude"`
	FromLon float64 `validate:"longitude"`
	ToLat   float64 `validate:"latitude"`
	ToLon   float64 `validate:"longitude"`
	At      string  // optional HH:MM:SS time of day; defaults to the current clock
}

func (s *Server) handleJourney(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	req, err := parseJourneyRequest(r)
	if err == nil {
		err = s.validate.Struct(req)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	if req.At != "" {
		sec, err := utils.ParseGTFSTime(req.At)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		now = utils.ClockTime(now, sec)
	}

	origin := journey.Point{Name: "origin", Lat: req.FromLat, Lon: req.FromLon}
	destination := journey.Point{Name: "destination", Lat: req.ToLat, Lon: req.ToLon}

	start := time.Now()
	j, err := s.planner.PlanJourney(origin, destination, now)
	if s.mcol != nil {
		s.mcol.PlanDuration.Observe(time.Since(start).Seconds())
	}
	switch {
	case errors.Is(err, planner.ErrNoSchedule):
		s.countPlan("no_schedule")
		writeError(w, http.StatusServiceUnavailable, "no schedule loaded")
	case errors.Is(err, planner.ErrNoRoute):
		s.countPlan("no_route")
		writeError(w, http.StatusNotFound, "no itinerary found")
	case err != nil:
		s.countPlan("error")
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		s.countPlan("found")
		if s.mcol != nil {
			s.mcol.Transfers.Observe(float64(j.Transfers))
		}
		_ = json.NewEncoder(w).Encode(j)
	}
}

func (s *Server) countPlan(outcome string) {
	if s.mcol != nil {
		s.mcol.PlansTotal.WithLabelValues(outcome).Inc()
	}
}

func parseJourneyRequest(r *http.Request) (journeyRequest, error) {
	q := r.URL.Query()
	var req journeyRequest
	var err error
	if req.FromLat, err = strconv.ParseFloat(q.Get("fromLat"), 64); err != nil {
		return req, errors.New("invalid or missing fromLat")
	}
	if req.FromLon, err = strconv.ParseFloat(q.Get("fromLon"), 64); err != nil {
		return req, errors.New("invalid or missing fromLon")
	}
	if req.ToLat, err = strconv.ParseFloat(q.Get("toLat"), 64); err != nil {
		return req, errors.New("invalid or missing toLat")
	}
	if req.ToLon, err = strconv.ParseFloat(q.Get("toLon"), 64); err != nil {
		return req, errors.New("invalid or missing toLon")
	}
	req.At = q.Get("at")
	return req, nil
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
