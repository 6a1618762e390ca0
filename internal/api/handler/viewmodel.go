package handler

import (
	"github.com/senthamizhselvan-sm/staff-attendance/internal/model"
)

// RecordView 值班记录的展示形态：空值字段换成占位文案，派生标签现算
type RecordView struct {
	AssignedStaffName string
	ReportedStaffName string
	HallNo            string
	DutyDate          string
	MobileNumber      string
	CheckinTime       string
	SubmissionTime    string
	StatusLabel       string
	IsProxy           bool
}

func newRecordView(r *model.DutyRecord) RecordView {
	return RecordView{
		AssignedStaffName: r.AssignedStaffName,
		ReportedStaffName: model.StringOr(r.ReportedStaffName, model.PlaceholderNotReported),
		HallNo:            model.StringOr(r.HallNo, model.PlaceholderNotAssigned),
		DutyDate:          r.DutyDate,
		MobileNumber:      r.MobileNumber,
		CheckinTime:       model.StringOr(r.CheckinTime, model.PlaceholderNotCheckedIn),
		SubmissionTime:    model.StringOr(r.SubmissionTime, model.PlaceholderNotSubmitted),
		StatusLabel:       statusLabel(r),
		IsProxy:           r.IsProxy(),
	}
}

func newRecordViews(records []model.DutyRecord) []RecordView {
	views := make([]RecordView, 0, len(records))
	for i := range records {
		views = append(views, newRecordView(&records[i]))
	}
	return views
}

// statusLabel 徽标文案，按 已交卷 → 已签到（区分代签） → 未签到 裁定
func statusLabel(r *model.DutyRecord) string {
	switch {
	case r.IsSubmitted():
		return "Submitted"
	case r.IsCheckedIn() || (r.Status != nil && *r.Status == "Reported"):
		if r.IsProxy() {
			return "Proxy Check-in"
		}
		return "Checked In"
	default:
		return "Not Checked In"
	}
}
