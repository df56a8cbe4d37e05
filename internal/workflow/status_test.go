package workflow

import (
	"errors"
	"testing"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

func completedReview(score int32) *domain.Review {
	comments := "评审意见"
	return &domain.Review{Score: &score, Comments: &comments, Completed: true}
}

func pendingReview() *domain.Review {
	return &domain.Review{Completed: false}
}

func TestCheckStatusChange(t *testing.T) {
	tests := []struct {
		name            string
		newStatus       string
		reviews         []*domain.Review
		want            domain.PaperStatus
		wantValidation  bool
		wantPrecondFail bool
	}{
		{
			name:      "流转到评审中",
			newStatus: "UNDER_REVIEW",
			reviews:   nil,
			want:      domain.PaperStatusUnderReview,
		},
		{
			name:           "非法状态",
			newStatus:      "PUBLISHED",
			wantValidation: true,
		},
		{
			name:           "空状态",
			newStatus:      "",
			wantValidation: true,
		},
		{
			name:            "没有评审记录时不能接收",
			newStatus:       "ACCEPTED",
			reviews:         nil,
			wantPrecondFail: true,
		},
		{
			name:            "仍有未完成的评审时不能接收",
			newStatus:       "ACCEPTED",
			reviews:         []*domain.Review{completedReview(8), pendingReview()},
			wantPrecondFail: true,
		},
		{
			name:      "全部评审完成后可以接收",
			newStatus: "ACCEPTED",
			reviews:   []*domain.Review{completedReview(8), completedReview(6)},
			want:      domain.PaperStatusAccepted,
		},
		{
			name:      "没有评审记录也可以拒绝",
			newStatus: "REJECTED",
			reviews:   nil,
			want:      domain.PaperStatusRejected,
		},
		{
			name:      "评审未完成也可以要求修改",
			newStatus: "REVISIONS_REQUESTED",
			reviews:   []*domain.Review{pendingReview()},
			want:      domain.PaperStatusRevisionsRequested,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckStatusChange(tt.newStatus, tt.reviews)

			if tt.wantValidation {
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("期望 ValidationError，但得到 %v", err)
				}
				return
			}
			if tt.wantPrecondFail {
				var preconditionErr *PreconditionError
				if !errors.As(err, &preconditionErr) {
					t.Fatalf("期望 PreconditionError，但得到 %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("不期望出错: %v", err)
			}
			if got != tt.want {
				t.Errorf("目标状态 = %s，期望 %s", got, tt.want)
			}
		})
	}
}

func TestNeedsReviewers(t *testing.T) {
	if !NeedsReviewers(domain.PaperStatusUnderReview, 0) {
		t.Error("评审中且没有评审记录时应该提示分配审稿人")
	}
	if NeedsReviewers(domain.PaperStatusUnderReview, 2) {
		t.Error("已有评审记录时不应该提示")
	}
	if NeedsReviewers(domain.PaperStatusRejected, 0) {
		t.Error("已拒绝的论文不应该提示")
	}
}

func TestCheckReviewSubmission(t *testing.T) {
	tests := []struct {
		name     string
		score    int32
		comments string
		wantErr  bool
	}{
		{"正常提交", 7, "实验充分", false},
		{"下界", 1, "有待改进", false},
		{"上界", 10, "强烈推荐", false},
		{"评分过低", 0, "意见", true},
		{"评分过高", 11, "意见", true},
		{"意见为空", 5, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckReviewSubmission(tt.score, tt.comments)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v，wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("期望 ValidationError，但得到 %T", err)
				}
			}
		})
	}
}
