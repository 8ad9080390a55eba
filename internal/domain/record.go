package domain

// Worker represents a crew member that time is recorded against
type Worker struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	HourlyRate string `json:"hourly_rate,omitempty"`
	IsActive   bool   `json:"is_active"`
}

// Property represents a job site
type Property struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Address         string `json:"address,omitempty"`
	IsSpringCleanup bool   `json:"is_spring_cleanup"`
	IsFallCleanup   bool   `json:"is_fall_cleanup"`
	IsActive        bool   `json:"is_active"`
}

// TimeRecord is a work session as the backend reports it. Times are the
// backend's local date/time strings; the client never does arithmetic on them.
type TimeRecord struct {
	ID            int64     `json:"id"`
	PropertyID    int64     `json:"property_id"`
	Property      *Property `json:"property,omitempty"`
	Workers       []Worker  `json:"workers"`
	WorkDate      string    `json:"work_date"`
	StartTime     string    `json:"start_time"`
	EndTime       *string   `json:"end_time,omitempty"`
	BreakMinutes  int       `json:"break_minutes"`
	TotalMinutes  *int      `json:"total_minutes,omitempty"`
	TotalCost     *string   `json:"total_cost,omitempty"`
	IsManualEntry bool      `json:"is_manual_entry"`
	Notes         string    `json:"notes,omitempty"`
}

// InProgress reports whether the record has not been stopped yet
func (r *TimeRecord) InProgress() bool {
	return r.EndTime == nil
}

// WorkerIDs returns the ids of the record's workers
func (r *TimeRecord) WorkerIDs() []int64 {
	ids := make([]int64, 0, len(r.Workers))
	for _, w := range r.Workers {
		ids = append(ids, w.ID)
	}
	return ids
}
