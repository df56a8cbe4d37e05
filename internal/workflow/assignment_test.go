package workflow

import (
	"errors"
	"slices"
	"testing"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

func TestPlanAssignment(t *testing.T) {
	tests := []struct {
		name        string
		status      domain.PaperStatus
		existing    []int64
		requested   []int64
		wantNew     []int64
		wantUpdate  bool
		wantErrType any
	}{
		{
			name:       "首次分配",
			status:     domain.PaperStatusSubmitted,
			existing:   nil,
			requested:  []int64{1, 2},
			wantNew:    []int64{1, 2},
			wantUpdate: true,
		},
		{
			name:       "已在评审中的论文追加审稿人",
			status:     domain.PaperStatusUnderReview,
			existing:   []int64{1},
			requested:  []int64{2, 3},
			wantNew:    []int64{2, 3},
			wantUpdate: false,
		},
		{
			name:       "已分配的审稿人被跳过",
			status:     domain.PaperStatusUnderReview,
			existing:   []int64{1, 2},
			requested:  []int64{1, 2, 3},
			wantNew:    []int64{3},
			wantUpdate: false,
		},
		{
			name:       "请求中的重复 id 被去掉",
			status:     domain.PaperStatusSubmitted,
			existing:   nil,
			requested:  []int64{5, 5, 6},
			wantNew:    []int64{5, 6},
			wantUpdate: true,
		},
		{
			name:        "空请求",
			status:      domain.PaperStatusSubmitted,
			existing:    nil,
			requested:   []int64{},
			wantErrType: &ValidationError{},
		},
		{
			name:        "全部已分配",
			status:      domain.PaperStatusUnderReview,
			existing:    []int64{1, 2},
			requested:   []int64{1, 2},
			wantErrType: &ValidationError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paper := &domain.Paper{ID: 42, Status: tt.status}

			plan, err := PlanAssignment(paper, tt.existing, tt.requested)

			if tt.wantErrType != nil {
				if err == nil {
					t.Fatal("期望返回错误，但得到了 nil")
				}
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("期望 ValidationError，但得到 %T", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("不期望出错: %v", err)
			}
			if !slices.Equal(plan.NewReviewerIDs, tt.wantNew) {
				t.Errorf("NewReviewerIDs = %v，期望 %v", plan.NewReviewerIDs, tt.wantNew)
			}
			if plan.UpdateStatus != tt.wantUpdate {
				t.Errorf("UpdateStatus = %v，期望 %v", plan.UpdateStatus, tt.wantUpdate)
			}
		})
	}
}

// 同样的请求重复执行两次，第二次应该因为没有新审稿人而失败，
// 不会产生重复的分配
func TestPlanAssignmentIdempotent(t *testing.T) {
	paper := &domain.Paper{ID: 1, Status: domain.PaperStatusSubmitted}

	plan, err := PlanAssignment(paper, nil, []int64{1, 2})
	if err != nil {
		t.Fatalf("第一次分配不期望出错: %v", err)
	}

	paper.Status = domain.PaperStatusUnderReview

	if _, err := PlanAssignment(paper, plan.NewReviewerIDs, []int64{1, 2}); err == nil {
		t.Fatal("重复分配应该返回错误")
	}
}
