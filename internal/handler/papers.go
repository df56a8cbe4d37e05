package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/assigner"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/workflow"
)

func (h *Handler) SubmitPaper(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Title    string `json:"title" validate:"required"`
		Abstract string `json:"abstract" validate:"required"`
		Keywords string `json:"keywords" validate:"required"`
		PdfURL   string `json:"pdfUrl" validate:"required,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if myInfo.Role == domain.RoleReviewer || myInfo.Role == domain.RoleAdmin || myInfo.Role == domain.RoleOrganizer {
		h.forbidden(w, r, "当前身份不能提交论文")
		return
	}

	paper := &domain.Paper{
		Title:    req.Title,
		Abstract: req.Abstract,
		Keywords: req.Keywords,
		PdfURL:   req.PdfURL,
		AuthorID: myInfo.ID,
	}

	if err := h.repository.CreatePaper(paper); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 参会者第一次投稿后自动变成作者身份
	if myInfo.Role == domain.RoleAttendee {
		myInfo.Role = domain.RoleAuthor
		if err := h.repository.UpdateUser(myInfo); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	// 匿名化是异步的，失败不影响投稿本身
	if err := h.publishJSON(AnonymizeQueue, domain.AnonymizeTask{PaperID: paper.ID}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "论文提交成功", paper)
}

func (h *Handler) GetPapers(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var papers []*domain.Paper
	var err error

	switch myInfo.Role {
	case domain.RoleAdmin, domain.RoleOrganizer:
		papers, err = h.repository.GetAllPapers()
	case domain.RoleReviewer:
		papers, err = h.repository.GetPapersByReviewerID(myInfo.ID)
	default:
		papers, err = h.repository.GetPapersByAuthorID(myInfo.ID)
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 一次性取出所有用户和评审记录，避免每篇论文都查一次数据库
	users, err := h.repository.GetAllUsers(nil)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	userMap := make(map[int64]*domain.User, len(users))
	for _, user := range users {
		userMap[user.ID] = user
	}

	reviews, err := h.repository.GetAllReviews()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	reviewMap := make(map[int64][]*domain.Review)
	for _, review := range reviews {
		reviewMap[review.PaperID] = append(reviewMap[review.PaperID], review)
	}

	views := make([]*workflow.PaperView, 0, len(papers))
	for _, paper := range papers {
		views = append(views, workflow.ShapePaper(paper, userMap[paper.AuthorID], reviewMap[paper.ID], myInfo.Role))
	}

	h.successResponse(w, r, "获取论文列表成功", views)
}

func (h *Handler) GetPaper(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	paper := r.Context().Value(PaperCtx).(*domain.Paper)

	// 作者只能看自己的论文，审稿人只能看分配给自己的论文。
	// 无权访问时返回 404，避免暴露论文的存在
	switch myInfo.Role {
	case domain.RoleAdmin, domain.RoleOrganizer:
	case domain.RoleReviewer:
		reviewerIDs, err := h.repository.GetPaperReviewerIDs(paper.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		assigned := false
		for _, id := range reviewerIDs {
			if id == myInfo.ID {
				assigned = true
				break
			}
		}
		if !assigned {
			h.notFound(w, r, "论文不存在")
			return
		}
	default:
		if paper.AuthorID != myInfo.ID {
			h.notFound(w, r, "论文不存在")
			return
		}
	}

	author, err := h.repository.GetUserByID(paper.AuthorID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	reviews, err := h.repository.GetReviewsByPaperID(paper.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取论文成功", workflow.ShapePaper(paper, author, reviews, myInfo.Role))
}

func (h *Handler) AssignReviewers(w http.ResponseWriter, r *http.Request) {
	paper := r.Context().Value(PaperCtx).(*domain.Paper)

	var req struct {
		ReviewerIDs []int64 `json:"reviewerIDs" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	existingReviewerIDs, err := h.repository.GetPaperReviewerIDs(paper.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	plan, err := workflow.PlanAssignment(paper, existingReviewerIDs, req.ReviewerIDs)
	if err != nil {
		h.businessError(w, r, err, "论文不存在")
		return
	}

	// 逐个确认被分配的用户存在且具有审稿人身份
	for _, reviewerID := range plan.NewReviewerIDs {
		user, err := h.repository.GetUserByID(reviewerID)
		if err != nil {
			h.businessError(w, r, err, "所选审稿人不存在")
			return
		}
		if user.Role != domain.RoleReviewer {
			h.errorResponse(w, r, http.StatusBadRequest, "所选用户不是审稿人")
			return
		}
		if user.ID == paper.AuthorID {
			h.errorResponse(w, r, http.StatusBadRequest, "作者不能评审自己的论文")
			return
		}
	}

	reviews, err := h.repository.AssignReviewers(paper, plan.NewReviewerIDs, plan.UpdateStatus)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "reviews_paper_id_reviewer_id_key":
			// 两次分配请求并发时，数据库的唯一约束兜底
			h.errorResponse(w, r, http.StatusConflict, "所选审稿人均已被分配至该论文")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// TODO: 给新分配的审稿人发一封通知邮件
	h.successResponse(w, r, "分配审稿人成功", map[string]any{
		"assignedReviewers": len(reviews),
		"reviews":           reviews,
		"statusUpdated":     plan.UpdateStatus,
	})
}

func (h *Handler) UpdatePaperStatus(w http.ResponseWriter, r *http.Request) {
	paper := r.Context().Value(PaperCtx).(*domain.Paper)

	var req struct {
		Status string `json:"status" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	reviews, err := h.repository.GetReviewsByPaperID(paper.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	target, err := workflow.CheckStatusChange(req.Status, reviews)
	if err != nil {
		h.businessError(w, r, err, "论文不存在")
		return
	}

	if err := h.repository.UpdatePaperStatus(paper, target); err != nil {
		h.versionConflict(w, r, err, "论文状态已被其他人修改，请重试")
		return
	}

	// 出结论时通知作者
	if target == domain.PaperStatusAccepted || target == domain.PaperStatusRejected || target == domain.PaperStatusRevisionsRequested {
		author, err := h.repository.GetUserByID(paper.AuthorID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		mailMessage := domain.MailMessage{
			Type: "paper_decision",
			To:   author.Email,
			Data: domain.PaperDecisionMailData{
				FullName: author.FullName,
				Title:    paper.Title,
				Status:   string(target),
			},
		}

		if err := h.publishJSON(EmailQueue, mailMessage); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "更新论文状态成功", map[string]any{
		"paper":          paper,
		"needsReviewers": workflow.NeedsReviewers(paper.Status, len(reviews)),
	})
}

// RequestAnonymization 手动触发一次匿名化，用于自动流程失败后的重试
func (h *Handler) RequestAnonymization(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	paper := r.Context().Value(PaperCtx).(*domain.Paper)

	if myInfo.Role != domain.RoleAdmin && myInfo.Role != domain.RoleOrganizer && paper.AuthorID != myInfo.ID {
		h.notFound(w, r, "论文不存在")
		return
	}

	if err := h.publishJSON(AnonymizeQueue, domain.AnonymizeTask{PaperID: paper.ID}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "已提交匿名化任务", nil)
}

func (h *Handler) SuggestAssignments(w http.ResponseWriter, r *http.Request) {
	// 获取参数
	var req struct {
		PopulationSize    int32   `json:"populationSize" validate:"required,min=1"`
		MaxGenerations    int32   `json:"maxGenerations" validate:"required,min=1"`
		CrossoverRate     float64 `json:"crossoverRate" validate:"required,min=0,max=1"`
		MutationRate      float64 `json:"mutationRate" validate:"required,min=0,max=1"`
		EliteCount        int32   `json:"eliteCount" validate:"required,min=0,ltefield=PopulationSize"`
		FairnessWeight    float64 `json:"fairnessWeight" validate:"required,min=0"`
		ReviewersPerPaper int32   `json:"reviewersPerPaper" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 构建参数
	parameters := &assigner.Parameters{
		PopulationSize:    req.PopulationSize,
		MaxGenerations:    req.MaxGenerations,
		CrossoverRate:     req.CrossoverRate,
		MutationRate:      req.MutationRate,
		EliteCount:        req.EliteCount,
		FairnessWeight:    req.FairnessWeight,
		ReviewersPerPaper: req.ReviewersPerPaper,
	}

	users, err := h.repository.GetAllUsers(nil)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	papers, err := h.repository.GetAllPapers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	reviews, err := h.repository.GetAllReviews()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 自动生成分配建议，不直接落库，由组织者确认后再逐篇分配
	a, err := assigner.New(parameters, users, papers, reviews)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	suggestions, err := a.Suggest()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "生成分配建议成功", suggestions)
}
