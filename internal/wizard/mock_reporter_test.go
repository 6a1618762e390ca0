package wizard

import (
	"context"

	"github.com/senthamizhselvan-sm/staff-attendance/internal/attendance"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/model"
)

// ── Mock Reporter ──

type mockReporter struct {
	staff     *model.Staff
	staffErr  error
	report    *attendance.ReportResult
	reportErr error
	submitErr error
	proxyErr  error

	fetchExists bool
	fetchDuty   *model.DutyRecord
	fetchErr    error

	lookupCalls int
	reportCalls int
	submitCalls int
	proxyCalls  int
	fetchCalls  int
	fetchMobile string
}

func (m *mockReporter) LookupStaffByMobile(_ context.Context, _ string) (*model.Staff, error) {
	m.lookupCalls++
	return m.staff, m.staffErr
}

func (m *mockReporter) ReportCheckIn(_ context.Context, _ string) (*attendance.ReportResult, error) {
	m.reportCalls++
	return m.report, m.reportErr
}

func (m *mockReporter) SubmitPapers(_ context.Context, _ string) error {
	m.submitCalls++
	return m.submitErr
}

func (m *mockReporter) ProxyCheckIn(_ context.Context, _, _, _ string) error {
	m.proxyCalls++
	return m.proxyErr
}

func (m *mockReporter) FetchDutyByMobile(_ context.Context, mobile string) (bool, *model.DutyRecord, error) {
	m.fetchCalls++
	m.fetchMobile = mobile
	return m.fetchExists, m.fetchDuty, m.fetchErr
}
