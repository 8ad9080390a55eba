package dto

// TimerStartRequest is the payload for POST /time-records/start
type TimerStartRequest struct {
	PropertyID int64   `json:"property_id"`
	WorkerIDs  []int64 `json:"worker_ids"`
}

// TimerStopRequest is the payload for POST /time-records/stop
type TimerStopRequest struct {
	TimeRecordID int64   `json:"time_record_id"`
	BreakMinutes int     `json:"break_minutes"`
	WorkerIDs    []int64 `json:"worker_ids"`
}

// RecordFilter narrows GET /time-records queries. Zero values are omitted.
type RecordFilter struct {
	StartDate  string
	EndDate    string
	PropertyID int64
	WorkerID   int64
}

// ReportSummary is the admin report aggregate from GET /reports/summary
type ReportSummary struct {
	TotalHours      float64 `json:"total_hours"`
	TotalCost       float64 `json:"total_cost"`
	RecordsCount    int     `json:"records_count"`
	PropertiesCount int     `json:"properties_count"`
}
