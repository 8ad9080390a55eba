package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/olejniktut/dc-landscaping/internal/domain"
	"github.com/olejniktut/dc-landscaping/internal/dto"
)

// StartTimer creates an in-progress time record
func (c *Client) StartTimer(ctx context.Context, req dto.TimerStartRequest) (*domain.TimeRecord, error) {
	var record domain.TimeRecord
	err := c.do(ctx, http.MethodPost, "/time-records/start", nil, req, &record, callOpts{
		authed:         true,
		idempotencyKey: uuid.New().String(),
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// StopTimer finalizes an in-progress time record
func (c *Client) StopTimer(ctx context.Context, req dto.TimerStopRequest) (*domain.TimeRecord, error) {
	var record domain.TimeRecord
	err := c.do(ctx, http.MethodPost, "/time-records/stop", nil, req, &record, callOpts{
		authed:         true,
		idempotencyKey: uuid.New().String(),
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListTodayRecords fetches today's time records, newest first
func (c *Client) ListTodayRecords(ctx context.Context) ([]domain.TimeRecord, error) {
	var records []domain.TimeRecord
	if err := c.do(ctx, http.MethodGet, "/time-records/today", nil, nil, &records, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return records, nil
}

// ListRecords fetches time records matching the filter
func (c *Client) ListRecords(ctx context.Context, filter dto.RecordFilter) ([]domain.TimeRecord, error) {
	query := url.Values{}
	if filter.StartDate != "" {
		query.Set("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		query.Set("end_date", filter.EndDate)
	}
	if filter.PropertyID != 0 {
		query.Set("property_id", strconv.FormatInt(filter.PropertyID, 10))
	}
	if filter.WorkerID != 0 {
		query.Set("worker_id", strconv.FormatInt(filter.WorkerID, 10))
	}

	var records []domain.TimeRecord
	if err := c.do(ctx, http.MethodGet, "/time-records", query, nil, &records, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return records, nil
}

// ListWorkers fetches the worker roster
func (c *Client) ListWorkers(ctx context.Context, includeInactive bool) ([]domain.Worker, error) {
	query := url.Values{"include_inactive": []string{strconv.FormatBool(includeInactive)}}
	var workers []domain.Worker
	if err := c.do(ctx, http.MethodGet, "/workers", query, nil, &workers, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return workers, nil
}

// ListProperties fetches the property roster
func (c *Client) ListProperties(ctx context.Context, includeInactive bool) ([]domain.Property, error) {
	query := url.Values{"include_inactive": []string{strconv.FormatBool(includeInactive)}}
	var properties []domain.Property
	if err := c.do(ctx, http.MethodGet, "/properties", query, nil, &properties, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return properties, nil
}

// GetReportSummary fetches the admin report aggregate for a date range
func (c *Client) GetReportSummary(ctx context.Context, startDate, endDate string) (*dto.ReportSummary, error) {
	query := url.Values{}
	if startDate != "" {
		query.Set("start_date", startDate)
	}
	if endDate != "" {
		query.Set("end_date", endDate)
	}

	var summary dto.ReportSummary
	if err := c.do(ctx, http.MethodGet, "/reports/summary", query, nil, &summary, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return &summary, nil
}
