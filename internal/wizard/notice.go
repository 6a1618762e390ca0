package wizard

// NoticeKind 提示条的视觉级别
type NoticeKind string

const (
	// NoticeInfo 正常流转提示
	NoticeInfo NoticeKind = "info"
	// NoticeWarn 保守放行类提示：流程继续，但结果未被服务端明确确认
	NoticeWarn NoticeKind = "warn"
	// NoticeError 失败提示，用户停留在当前步骤
	NoticeError NoticeKind = "error"
)

// Notice 一次性提示条，渲染一次即消费
type Notice struct {
	Kind        NoticeKind `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}
