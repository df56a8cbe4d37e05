package workflow

import (
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

/**
 * 论文状态机：SUBMITTED → UNDER_REVIEW → {ACCEPTED, REJECTED, REVISIONS_REQUESTED}
 * REVISIONS_REQUESTED 允许重新回到 UNDER_REVIEW（作者修改后再审）
 * 只有 ACCEPTED 带有前置条件：至少存在一条评审记录且全部完成
 * REJECTED 和 REVISIONS_REQUESTED 不做同样的检查，这是刻意保留的不对称
 */

// CheckStatusChange 校验一次状态变更请求，返回解析后的目标状态
func CheckStatusChange(newStatus string, reviews []*domain.Review) (domain.PaperStatus, error) {
	if !domain.IsValidPaperStatus(newStatus) {
		return "", NewValidationError("无效的论文状态")
	}

	target := domain.PaperStatus(newStatus)

	if target == domain.PaperStatusAccepted {
		if len(reviews) == 0 {
			return "", NewPreconditionError("论文还没有任何评审记录，不能接收")
		}
		for _, review := range reviews {
			if !review.Completed {
				return "", NewPreconditionError("仍有未完成的评审，不能接收")
			}
		}
	}

	return target, nil
}

// NeedsReviewers 在状态变更后提示前端是否需要继续分配审稿人
// 这只是一个建议信号，不阻塞任何操作
func NeedsReviewers(status domain.PaperStatus, reviewCount int) bool {
	return status == domain.PaperStatusUnderReview && reviewCount == 0
}

// CheckReviewSubmission 校验审稿人提交的评分和意见
// 重复提交是允许的，直接覆盖上一次的结果
func CheckReviewSubmission(score int32, comments string) error {
	if score < 1 || score > 10 {
		return NewValidationError("评分必须在 1 到 10 之间")
	}
	if comments == "" {
		return NewValidationError("评审意见不能为空")
	}
	return nil
}
