package gtfs

// Stop is a physical boarding/alighting location.
type Stop struct {
	ID   string  `json:"stop_id"`
	Name string  `json:"stop_name"`
	Lat  float64 `json:"stop_lat"`
	Lon  float64 `json:"stop_lon"`
}

// Route is a public-facing named transit line grouping trips.
type Route struct {
	ID        string `json:"route_id"`
	ShortName string `json:"route_short_name"`
	LongName  string `json:"route_long_name"`
	Color     string `json:"route_color"`
}

// Trip is one scheduled vehicle run of a Route under a service calendar.
type Trip struct {
	ID        string `json:"trip_id"`
	RouteID   string `json:"route_id"`
	ServiceID string `json:"service_id"`
	Headsign  string `json:"trip_headsign"`
}

// StopTime is a trip's scheduled visit at one stop. ArrivalSec and
// DepartureSec are seconds since midnight of the service date; values of
// 86400 and above denote post-midnight visits of an overnight trip.
type StopTime struct {
	TripID       string `json:"trip_id"`
	StopID       string `json:"stop_id"`
	ArrivalSec   int    `json:"arrival_sec"`
	DepartureSec int    `json:"departure_sec"`
	Seq          int    `json:"stop_sequence"`
}

// Calendar describes the weekly pattern of a service within an inclusive
// yyyymmdd date range.
type Calendar struct {
	ServiceID string `json:"service_id"`
	Monday    bool   `json:"monday"`
	Tuesday   bool   `json:"tuesday"`
	Wednesday bool   `json:"wednesday"`
	Thursday  bool   `json:"thursday"`
	Friday    bool   `json:"friday"`
	Saturday  bool   `json:"saturday"`
	Sunday    bool   `json:"sunday"`
	StartDate int    `json:"start_date"`
	EndDate   int    `json:"end_date"`
}

// Exception kinds used by CalendarDate, matching GTFS exception_type.
const (
	ExceptionAdded   = 1
	ExceptionRemoved = 2
)

// CalendarDate overrides a service's weekly pattern for one exact date.
type CalendarDate struct {
	ServiceID string `json:"service_id"`
	Date      int    `json:"date"`
	Exception int    `json:"exception_type"`
}

// Stats summarizes the loaded snapshot for health reporting.
type Stats struct {
	Stops         int `json:"stops"`
	Routes        int `json:"routes"`
	Trips         int `json:"trips"`
	StopTimes     int `json:"stop_times"`
	Calendars     int `json:"calendars"`
	CalendarDates int `json:"calendar_dates"`
}
