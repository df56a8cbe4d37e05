package workflow

import (
	"time"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

// 按角色对论文做输出裁剪：
//  1. ADMIN / ORGANIZER 可以看到作者信息和完整的评审意见
//  2. AUTHOR 可以看到自己的论文和评审进度，但看不到评审意见和审稿人身份
//  3. REVIEWER 永远看不到作者信息，且 PDF 替换为匿名化版本（如果有）
// 状态机和分配逻辑本身不感知角色，所有裁剪都集中在这里

type PaperAuthorView struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type ReviewInPaperView struct {
	ID        int64   `json:"id"`
	Score     *int32  `json:"score"`
	Completed bool    `json:"completed"`
	Comments  *string `json:"comments,omitempty"`
}

type PaperView struct {
	ID                int64               `json:"id"`
	Title             string              `json:"title"`
	Abstract          string              `json:"abstract"`
	Keywords          string              `json:"keywords"`
	PdfURL            string              `json:"pdfUrl"`
	Status            domain.PaperStatus  `json:"status"`
	IsAnonymized      bool                `json:"isAnonymized"`
	NeedsManualReview bool                `json:"needsManualReview"`
	Author            *PaperAuthorView    `json:"author,omitempty"`
	Reviews           []ReviewInPaperView `json:"reviews"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// ReviewerPdfURL 返回审稿人可见的 PDF 地址：优先匿名化版本，否则退回原始 PDF
func ReviewerPdfURL(paper *domain.Paper) string {
	if paper.AnonymizedPdfURL != nil && *paper.AnonymizedPdfURL != "" {
		return *paper.AnonymizedPdfURL
	}
	return paper.PdfURL
}

// ShapePaper 根据调用方角色生成论文视图
func ShapePaper(paper *domain.Paper, author *domain.User, reviews []*domain.Review, role domain.Role) *PaperView {
	view := &PaperView{
		ID:                paper.ID,
		Title:             paper.Title,
		Abstract:          paper.Abstract,
		Keywords:          paper.Keywords,
		PdfURL:            paper.PdfURL,
		Status:            paper.Status,
		IsAnonymized:      paper.IsAnonymized,
		NeedsManualReview: paper.NeedsManualReview,
		CreatedAt:         paper.CreatedAt,
		UpdatedAt:         paper.UpdatedAt,
	}

	showComments := role == domain.RoleAdmin || role == domain.RoleOrganizer

	view.Reviews = make([]ReviewInPaperView, 0, len(reviews))
	for _, review := range reviews {
		rv := ReviewInPaperView{
			ID:        review.ID,
			Score:     review.Score,
			Completed: review.Completed,
		}
		if showComments {
			rv.Comments = review.Comments
		}
		view.Reviews = append(view.Reviews, rv)
	}

	if role == domain.RoleReviewer {
		// 匿名评审：不暴露作者，替换 PDF
		view.PdfURL = ReviewerPdfURL(paper)
		return view
	}

	if author != nil {
		view.Author = &PaperAuthorView{
			ID:       author.ID,
			FullName: author.FullName,
			Email:    author.Email,
		}
	}

	return view
}
