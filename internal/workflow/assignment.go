package workflow

import (
	"slices"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

// AssignmentPlan 是一次审稿人分配操作的决策结果
// 由 handler 在一个事务中执行：插入评审记录 + 更新论文状态
type AssignmentPlan struct {
	NewReviewerIDs []int64
	UpdateStatus   bool // 论文当前不处于 UNDER_REVIEW 时需要流转状态
}

// PlanAssignment 根据论文当前已有的审稿人集合计算本次需要新建的评审记录
// existingReviewerIDs 必须来自同一次读取的快照，保证去重是针对一致的状态计算的
func PlanAssignment(paper *domain.Paper, existingReviewerIDs []int64, requestedReviewerIDs []int64) (*AssignmentPlan, error) {
	if len(requestedReviewerIDs) == 0 {
		return nil, NewValidationError("请至少提供一位审稿人")
	}

	// 请求中可能出现重复的 id，这里一并去掉
	newReviewerIDs := make([]int64, 0, len(requestedReviewerIDs))
	for _, id := range requestedReviewerIDs {
		if slices.Contains(existingReviewerIDs, id) {
			continue
		}
		if slices.Contains(newReviewerIDs, id) {
			continue
		}
		newReviewerIDs = append(newReviewerIDs, id)
	}

	if len(newReviewerIDs) == 0 {
		return nil, NewValidationError("所选审稿人均已被分配至该论文")
	}

	return &AssignmentPlan{
		NewReviewerIDs: newReviewerIDs,
		UpdateStatus:   paper.Status != domain.PaperStatusUnderReview,
	}, nil
}
