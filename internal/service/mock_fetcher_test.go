package service

import (
	"context"

	"github.com/senthamizhselvan-sm/staff-attendance/internal/model"
)

// ── Mock RecordFetcher ──

type mockFetcher struct {
	records []model.DutyRecord
	err     error
	calls   int
}

func (m *mockFetcher) FetchAllDutyRecords(_ context.Context) ([]model.DutyRecord, error) {
	m.calls++
	return m.records, m.err
}
