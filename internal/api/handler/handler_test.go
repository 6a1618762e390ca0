package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/senthamizhselvan-sm/staff-attendance/config"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/api/handler"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/api/router"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/attendance"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/service"
)

// ── 测试辅助 ──

// testApp 整机装配：假远端 + 真客户端 + 完整路由
// 用 cookie 罐在请求间延续浏览器会话
type testApp struct {
	engine  *gin.Engine
	cookies []*http.Cookie
}

func newTestApp(t *testing.T, upstream http.Handler) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:       3001,
			BaseURL:    "http://localhost:3001",
			CheckinURL: "http://localhost:3001/",
		},
		Upstream: config.UpstreamConfig{BaseURL: srv.URL, Timeout: 5 * time.Second},
		Session:  config.SessionConfig{Secret: "test-secret-0123456789abcdef", Name: "attendance_session"},
		Exam:     config.ExamConfig{Name: "Daily Invigilation Duty", TimeSlot: "09:00 AM - 12:00 PM"},
		Log:      config.LogConfig{Level: "error", Format: "console"},
	}

	logger := zap.NewNop()
	client := attendance.NewClient(&cfg.Upstream, logger)
	svc := service.NewService(client, logger)
	h := handler.NewHandler(cfg, client, svc, logger)

	return &testApp{engine: router.Setup(cfg, h, logger)}
}

// do 发起请求并续接会话 cookie
func (a *testApp) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range a.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	if set := rec.Result().Cookies(); len(set) > 0 {
		a.cookies = set
	}
	return rec
}

// fakeUpstream 覆盖向导与看板全部路径的远端考勤服务替身
func fakeUpstream(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	duty := map[string]any{
		"id": 7, "assigned_staff_name": "Anita", "reported_staff_name": "Anita",
		"hall_no": "H2", "duty_date": "2026-08-31", "mobile_number": "9876543210",
		"checkin_time": "09:00",
	}

	mux.HandleFunc("/staff/by-mobile/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/9876543210") {
			json.NewEncoder(w).Encode(map[string]string{
				"name": "Anita", "hall": "H2", "duty_date": "2026-08-31", "mobile_no": "9876543210",
			})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/duty/report", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"duty": duty})
	})
	mux.HandleFunc("/duty/today", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{duty})
	})
	mux.HandleFunc("/duty/all", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{duty})
	})
	mux.HandleFunc("/duty/check-mobile/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"exists": true, "duty": duty})
	})
	mux.HandleFunc("/duty/submit", func(w http.ResponseWriter, r *http.Request) {
		duty["submission_time"] = "11:30"
		duty["status"] = "Submitted"
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/duty/proxy", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	return mux
}

// ── 基础路由 ──

func TestHealth(t *testing.T) {
	app := newTestApp(t, fakeUpstream(t))

	rec := app.do(t, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("健康检查应返回 200，实际: %d", rec.Code)
	}
}

func TestHome_RendersScanStep(t *testing.T) {
	app := newTestApp(t, fakeUpstream(t))

	rec := app.do(t, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("首页应返回 200，实际: %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Simulate QR Scan") {
		t.Error("首页应渲染扫码步骤")
	}
	if !strings.Contains(body, "Proxy Check-in for Absent Colleague") {
		t.Error("首页应提供代签入口")
	}
}

func TestQRCode_ReturnsPNG(t *testing.T) {
	app := newTestApp(t, fakeUpstream(t))

	rec := app.do(t, http.MethodGet, "/qr.png", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("二维码应返回 200，实际: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type 错误: %s", ct)
	}
	// PNG 魔数
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("响应体不是合法的 PNG")
	}
}

// ── 向导整机流程 ──

func TestWizardFlow_ScanVerifySubmit(t *testing.T) {
	app := newTestApp(t, fakeUpstream(t))

	// 扫码：303 回展示页
	rec := app.do(t, http.MethodPost, "/checkin/scan", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("动作后应 303 跳回展示页，实际: %d", rec.Code)
	}

	// 展示核验页，并弹出一次性扫码提示
	rec = app.do(t, http.MethodGet, "/", nil)
	body := rec.Body.String()
	if !strings.Contains(body, "Verify Identity") {
		t.Fatal("扫码后应进入核验步骤")
	}
	if !strings.Contains(body, "QR Code Scanned") {
		t.Error("应展示扫码提示")
	}

	// 提示是一次性的：再次刷新不应重复出现
	rec = app.do(t, http.MethodGet, "/", nil)
	if strings.Contains(rec.Body.String(), "QR Code Scanned") {
		t.Error("一次性提示不应在刷新后重复出现")
	}

	// 核验并上报
	rec = app.do(t, http.MethodPost, "/checkin/verify", url.Values{"mobile_number": {"9876543210"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("核验后应 303，实际: %d", rec.Code)
	}
	rec = app.do(t, http.MethodGet, "/", nil)
	body = rec.Body.String()
	if !strings.Contains(body, "Successfully Checked In") {
		t.Error("应展示签到成功提示")
	}
	if !strings.Contains(body, "Anita") {
		t.Error("交卷页应展示值班记录")
	}

	// 交卷：终态
	app.do(t, http.MethodPost, "/checkin/submit", url.Values{})
	rec = app.do(t, http.MethodGet, "/", nil)
	if !strings.Contains(rec.Body.String(), "Papers Submitted Successfully") {
		t.Error("应展示交卷成功提示")
	}

	// 返回首页：回到扫码步骤
	app.do(t, http.MethodPost, "/checkin/home", url.Values{})
	rec = app.do(t, http.MethodGet, "/", nil)
	if !strings.Contains(rec.Body.String(), "Simulate QR Scan") {
		t.Error("返回首页后应回到扫码步骤")
	}
}

func TestWizardFlow_StaffNotFoundStaysOnVerify(t *testing.T) {
	app := newTestApp(t, fakeUpstream(t))

	app.do(t, http.MethodPost, "/checkin/scan", url.Values{})
	app.do(t, http.MethodGet, "/", nil)
	app.do(t, http.MethodPost, "/checkin/verify", url.Values{"mobile_number": {"1111111111"}})

	rec := app.do(t, http.MethodGet, "/", nil)
	body := rec.Body.String()
	if !strings.Contains(body, "Verify Identity") {
		t.Error("查无此人应停留在核验步骤")
	}
	if !strings.Contains(body, "Staff Not Found") {
		t.Error("应展示查无此人提示")
	}
}

// ── 管理看板 ──

func TestAdminGate_RedirectsToLogin(t *testing.T) {
	app := newTestApp(t, fakeUpstream(t))

	rec := app.do(t, http.MethodGet, "/admin", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("未登录访问看板应 303，实际: %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("应跳转到登录页，实际: %s", loc)
	}
}

func TestAdminFlow_LoginDashboardExportLogout(t *testing.T) {
	app := newTestApp(t, fakeUpstream(t))

	// 登录
	rec := app.do(t, http.MethodPost, "/admin/login", url.Values{"username": {"supervisor"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("登录后应 303 到看板，实际: %d", rec.Code)
	}

	// 看板
	rec = app.do(t, http.MethodGet, "/admin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("登录后看板应返回 200，实际: %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "supervisor") {
		t.Error("看板应展示登录用户名")
	}
	if !strings.Contains(body, "Anita") {
		t.Error("看板应展示值班记录")
	}

	// 导出
	rec = app.do(t, http.MethodGet, "/admin/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("导出应返回 200，实际: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("导出 Content-Type 错误: %s", ct)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "invigilation-report-") {
		t.Errorf("下载文件名错误: %s", rec.Header().Get("Content-Disposition"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte{0x50, 0x4B}) {
		t.Error("导出内容不是合法的 xlsx 文件")
	}

	// 登出后重新被拦截
	app.do(t, http.MethodPost, "/admin/logout", url.Values{})
	rec = app.do(t, http.MethodGet, "/admin", nil)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("登出后应重新被拦截，实际: %d", rec.Code)
	}
}

func TestAdminLogin_EmptyUsername(t *testing.T) {
	app := newTestApp(t, fakeUpstream(t))

	rec := app.do(t, http.MethodPost, "/admin/login", url.Values{"username": {"   "}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("空用户名应返回 400，实际: %d", rec.Code)
	}
}

func TestAdminDashboard_UpstreamDown(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	app.do(t, http.MethodPost, "/admin/login", url.Values{"username": {"supervisor"}})
	rec := app.do(t, http.MethodGet, "/admin", nil)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("远端故障应返回 502 提示页，实际: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please refresh to try again") {
		t.Error("应给出可重试的提示文案")
	}
}
