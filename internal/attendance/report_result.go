package attendance

import "github.com/senthamizhselvan-sm/staff-attendance/internal/model"

// Outcome 签到上报的归一化结果分类
//
// 远端 /duty/report 在失败响应体里用布尔旗标区分四种子情况
// （papersCollected / shouldSubmitPapers / isProxy / 兜底 message）。
// 旗标在客户端边界统一译成本枚举，上层状态机不接触原始旗标。
type Outcome int

const (
	// OutcomeCheckedIn 首次签到成功，进入交卷环节
	OutcomeCheckedIn Outcome = iota
	// OutcomePapersCollected 该考场试卷已被收走，流程终结
	OutcomePapersCollected
	// OutcomeAlreadySubmitted 此前已签到，携带权威记录继续交卷
	OutcomeAlreadySubmitted
	// OutcomeProxyExists 已有人代签，携带权威记录继续交卷
	OutcomeProxyExists
	// OutcomeUnhandled 未识别的失败，保守放行到交卷环节（带警示文案）
	OutcomeUnhandled
)

// ReportResult 签到上报的归一化响应
type ReportResult struct {
	Outcome Outcome
	// Duty 服务端附带的权威值班记录（部分子情况不附带，可为 nil）
	Duty *model.DutyRecord
	// Message 服务端兜底文案，仅 OutcomeUnhandled 关心
	Message string
}

// reportFailureBody /duty/report 失败响应的原始旗标形态
type reportFailureBody struct {
	PapersCollected    bool              `json:"papersCollected"`
	ShouldSubmitPapers bool              `json:"shouldSubmitPapers"`
	IsProxy            bool              `json:"isProxy"`
	Duty               *model.DutyRecord `json:"duty"`
	Message            string            `json:"message"`
}

// normalize 旗标 → 枚举。旗标按互斥优先级判定，全为假时落入 Unhandled
func (b *reportFailureBody) normalize() *ReportResult {
	switch {
	case b.PapersCollected:
		return &ReportResult{Outcome: OutcomePapersCollected}
	case b.ShouldSubmitPapers:
		return &ReportResult{Outcome: OutcomeAlreadySubmitted, Duty: b.Duty}
	case b.IsProxy:
		return &ReportResult{Outcome: OutcomeProxyExists, Duty: b.Duty}
	default:
		return &ReportResult{Outcome: OutcomeUnhandled, Message: b.Message}
	}
}
