package workflow

import (
	"testing"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

func testPaper() (*domain.Paper, *domain.User, []*domain.Review) {
	anonymized := "https://storage.example.com/conference-papers/anonymized/1.pdf"
	score := int32(8)
	comments := "可以录用"

	paper := &domain.Paper{
		ID:               1,
		Title:            "分布式系统中的一致性问题研究",
		PdfURL:           "https://storage.example.com/conference-papers/papers/1.pdf",
		AnonymizedPdfURL: &anonymized,
		Status:           domain.PaperStatusUnderReview,
		AuthorID:         10,
	}
	author := &domain.User{ID: 10, FullName: "王伟", Email: "wangwei@example.com"}
	reviews := []*domain.Review{
		{ID: 100, PaperID: 1, ReviewerID: 20, Score: &score, Comments: &comments, Completed: true},
		{ID: 101, PaperID: 1, ReviewerID: 21},
	}

	return paper, author, reviews
}

func TestShapePaperForReviewer(t *testing.T) {
	paper, author, reviews := testPaper()

	view := ShapePaper(paper, author, reviews, domain.RoleReviewer)

	if view.Author != nil {
		t.Error("审稿人不应该看到作者信息")
	}
	if view.PdfURL != *paper.AnonymizedPdfURL {
		t.Errorf("审稿人看到的 PDF 应该是匿名化版本，但得到 %s", view.PdfURL)
	}
	for _, rv := range view.Reviews {
		if rv.Comments != nil {
			t.Error("审稿人不应该看到其他评审的意见")
		}
	}
}

func TestShapePaperForAuthor(t *testing.T) {
	paper, author, reviews := testPaper()

	view := ShapePaper(paper, author, reviews, domain.RoleAuthor)

	if view.Author == nil {
		t.Fatal("作者视图应该包含作者信息")
	}
	if view.PdfURL != paper.PdfURL {
		t.Errorf("作者应该看到原始 PDF，但得到 %s", view.PdfURL)
	}
	for _, rv := range view.Reviews {
		if rv.Comments != nil {
			t.Error("作者不应该看到评审意见")
		}
	}
}

func TestShapePaperForOrganizer(t *testing.T) {
	paper, author, reviews := testPaper()

	view := ShapePaper(paper, author, reviews, domain.RoleOrganizer)

	if view.Author == nil {
		t.Fatal("组织者视图应该包含作者信息")
	}
	if len(view.Reviews) != 2 {
		t.Fatalf("期望 2 条评审，得到 %d", len(view.Reviews))
	}
	if view.Reviews[0].Comments == nil {
		t.Error("组织者应该看到已完成评审的意见")
	}
}

func TestReviewerPdfURLFallback(t *testing.T) {
	paper := &domain.Paper{PdfURL: "https://storage.example.com/conference-papers/papers/2.pdf"}

	if got := ReviewerPdfURL(paper); got != paper.PdfURL {
		t.Errorf("没有匿名化版本时应该退回原始 PDF，但得到 %s", got)
	}

	empty := ""
	paper.AnonymizedPdfURL = &empty
	if got := ReviewerPdfURL(paper); got != paper.PdfURL {
		t.Errorf("匿名化地址为空字符串时应该退回原始 PDF，但得到 %s", got)
	}
}
