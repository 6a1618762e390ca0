package model

// Staff 员工档案（按手机号查询接口的返回体）
type Staff struct {
	Name     string `json:"name"`
	Hall     string `json:"hall"`
	DutyDate string `json:"duty_date"`
	MobileNo string `json:"mobile_no"`
}
