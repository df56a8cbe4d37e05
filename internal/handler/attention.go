package handler

import (
	"context"
	"net/http"
	"time"
)

// GetAttentionAlerts 返回匿名化流程产生的待人工处理告警
func (h *Handler) GetAttentionAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	alerts, err := h.alerts.Recent(ctx, 50)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取告警列表成功", alerts)
}
