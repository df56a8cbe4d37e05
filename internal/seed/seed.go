package seed

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/utils"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/workflow"
)

// SeedDemoData 构造一个可以直接演示完整评审流程的数据集：
// 若干作者和审稿人、每位作者一到两篇论文、每篇论文两位审稿人，
// 其中一部分评审已经提交，一部分论文已经出了结论
func SeedDemoData(r *repository.Repository, password string, emailDomain string) {
	// 先插入审稿人
	reviewers := make([]*domain.User, 0, 6)
	for i := 0; i < 6; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomain)
		if err != nil {
			slog.Error("无法生成随机用户", "error", err)
			return
		}
		user.Role = domain.RoleReviewer

		if err := r.CreateUser(user); err != nil {
			slog.Error("插入审稿人失败", "error", err)
			continue
		}
		reviewers = append(reviewers, user)
	}

	if len(reviewers) < 2 {
		slog.Error("审稿人数量不足，无法继续")
		return
	}

	// 再插入作者、论文和评审记录
	for i := 0; i < 8; i++ {
		author, err := utils.GenerateRandomUser(password, emailDomain)
		if err != nil {
			slog.Error("无法生成随机用户", "error", err)
			return
		}
		author.Role = domain.RoleAuthor

		if err := r.CreateUser(author); err != nil {
			slog.Error("插入作者失败", "error", err)
			continue
		}

		paperNum := rand.Intn(2) + 1
		for j := 0; j < paperNum; j++ {
			pdfURL := fmt.Sprintf("https://storage.example.com/conference-papers/papers/seed_%s.pdf", utils.GenerateRandomID(4, 4))
			paper := utils.GenerateRandomPaper(author.ID, pdfURL)
			if err := r.CreatePaper(paper); err != nil {
				slog.Error("插入论文失败", "error", err)
				continue
			}

			// 随机挑两位审稿人
			first := rand.Intn(len(reviewers))
			second := (first + 1 + rand.Intn(len(reviewers)-1)) % len(reviewers)
			reviewerIDs := []int64{reviewers[first].ID, reviewers[second].ID}

			plan, err := workflow.PlanAssignment(paper, nil, reviewerIDs)
			if err != nil {
				slog.Error("生成分配计划失败", "error", err)
				continue
			}

			reviews, err := r.AssignReviewers(paper, plan.NewReviewerIDs, plan.UpdateStatus)
			if err != nil {
				slog.Error("分配审稿人失败", "error", err)
				continue
			}

			// 一部分评审直接提交结果
			completed := 0
			for _, review := range reviews {
				if rand.Intn(2) == 0 {
					continue
				}
				if err := r.UpdateReviewSubmission(review, utils.GenerateRandomScore(), utils.GenerateRandomComments()); err != nil {
					slog.Error("提交评审失败", "error", err)
					continue
				}
				completed++
			}

			// 评审全部完成的论文有机会直接出结论
			if completed == len(reviews) && rand.Intn(2) == 0 {
				target, err := workflow.CheckStatusChange(string(domain.PaperStatusAccepted), reviews)
				if err != nil {
					slog.Error("状态检查失败", "error", err)
					continue
				}
				if err := r.UpdatePaperStatus(paper, target); err != nil {
					slog.Error("更新论文状态失败", "error", err)
					continue
				}
			}
		}

		// 作者顺便报名参会
		registration := utils.GenerateRandomRegistration(author.ID)
		if err := r.CreateRegistration(registration); err != nil {
			slog.Error("插入报名记录失败", "error", err)
			continue
		}
	}

	slog.Info("插入演示数据完成")
}

// SeedRegistrations 为所有还没有报名的用户生成报名记录
func SeedRegistrations(r *repository.Repository) int {
	users, err := r.GetAllUsers(nil)
	if err != nil {
		slog.Error("无法获取用户列表", "error", err)
		return 0
	}

	cnt := 0
	for _, user := range users {
		if _, err := r.GetRegistrationByUserID(user.ID); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("查询报名记录失败", "error", err)
			continue
		}

		registration := utils.GenerateRandomRegistration(user.ID)
		if err := r.CreateRegistration(registration); err != nil {
			slog.Error("插入报名记录失败", "error", err)
			continue
		}
		cnt++
	}

	return cnt
}
