package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/workflow"
)

func (h *Handler) GetAssignedReviews(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	assigned, err := h.repository.GetAssignedReviews(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取评审任务成功", assigned)
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	review := r.Context().Value(ReviewCtx).(*domain.Review)
	h.successResponse(w, r, "获取评审记录成功", review)
}

func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	review := r.Context().Value(ReviewCtx).(*domain.Review)

	// 管理员和组织者可以查看评审记录，但不能代替审稿人提交
	if review.ReviewerID != myInfo.ID {
		h.forbidden(w, r, "只有审稿人本人才能提交评审")
		return
	}

	var req struct {
		Score    int32  `json:"score" validate:"required"`
		Comments string `json:"comments" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := workflow.CheckReviewSubmission(req.Score, req.Comments); err != nil {
		h.businessError(w, r, err, "评审记录不存在")
		return
	}

	if err := h.repository.UpdateReviewSubmission(review, req.Score, req.Comments); err != nil {
		h.versionConflict(w, r, err, "评审记录已被修改，请重试")
		return
	}

	h.successResponse(w, r, "提交评审成功", review)
}
