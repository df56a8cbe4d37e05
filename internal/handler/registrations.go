package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

func (h *Handler) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Type string `json:"type" validate:"required,oneof=REGULAR STUDENT VIRTUAL"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	registration := &domain.Registration{
		UserID: myInfo.ID,
		Type:   domain.RegistrationType(req.Type),
	}

	if err := h.repository.CreateRegistration(registration); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "registrations_user_id_key":
			h.errorResponse(w, r, http.StatusConflict, "您已报名本次会议")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "报名成功", registration)
}

func (h *Handler) GetMyRegistration(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	registration, err := h.repository.GetRegistrationByUserID(myInfo.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 没有报名不算错误
			h.successResponse(w, r, "您还没有报名", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取报名信息成功", registration)
}

func (h *Handler) GetAllRegistrations(w http.ResponseWriter, r *http.Request) {
	registrations, err := h.repository.GetAllRegistrations()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取报名列表成功", registrations)
}

func (h *Handler) UpdateRegistration(w http.ResponseWriter, r *http.Request) {
	registrationIDParam := chi.URLParam(r, "id")
	registrationID, err := strconv.ParseInt(registrationIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "报名记录ID无效")
		return
	}

	registration, err := h.repository.GetRegistrationByID(registrationID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "报名记录不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var req struct {
		IsPaid   *bool   `json:"isPaid"`
		BadgeURL *string `json:"badgeUrl" validate:"omitempty,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.IsPaid != nil {
		registration.IsPaid = *req.IsPaid
	}
	if req.BadgeURL != nil {
		registration.BadgeURL = req.BadgeURL
	}

	if err := h.repository.UpdateRegistration(registration); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusConflict, "报名记录已被修改，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新报名记录成功", registration)
}
