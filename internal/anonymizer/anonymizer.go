package anonymizer

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/attention"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/storage"
)

type Anonymizer struct {
	cfg    *config.Config
	repo   *repository.Repository
	store  *storage.PaperStore
	alerts *attention.List
}

func New(cfg *config.Config, repo *repository.Repository, store *storage.PaperStore, alerts *attention.List) *Anonymizer {
	return &Anonymizer{
		cfg:    cfg,
		repo:   repo,
		store:  store,
		alerts: alerts,
	}
}

// Process 处理一个匿名化任务：
//  1. 读取论文及作者信息
//  2. 从对象存储中取出原始 PDF
//  3. 逐页扫描作者姓名和单位关键词
//  4. 将匿名化副本写回对象存储，并更新论文的匿名化字段
//  5. 检测到作者信息时写入管理员告警列表
// 论文不存在时静默返回（可能在任务排队期间被删除了）
func (a *Anonymizer) Process(ctx context.Context, task *domain.AnonymizeTask) error {
	paper, err := a.repo.GetPaperByID(task.PaperID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("无法读取论文 %d: %w", task.PaperID, err)
	}

	author, err := a.repo.GetUserByID(paper.AuthorID)
	if err != nil {
		return fmt.Errorf("无法读取论文 %d 的作者: %w", paper.ID, err)
	}

	key, err := a.store.KeyFromURL(paper.PdfURL)
	if err != nil {
		// PDF 不在当前对象存储里，重投递也不会成功，直接转人工处理
		return a.flagManualReview(ctx, paper, "论文 PDF 不在对象存储中，无法自动匿名化")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.Anonymizer.FetchTimeout)*time.Second)
	defer cancel()

	data, err := a.store.Get(fetchCtx, key)
	if err != nil {
		if permanentStorageError(err) {
			return a.flagManualReview(ctx, paper, "论文 PDF 对象不存在，无法自动匿名化")
		}
		return fmt.Errorf("无法下载论文 %d 的 PDF: %w", paper.ID, err)
	}

	needsReview, err := ScanPDF(data, author.FullName)
	if err != nil {
		// PDF 无法解析时同样需要人工复核
		needsReview = true
	}

	anonymizedKey := fmt.Sprintf("anonymized/%d.pdf", paper.ID)

	putCtx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.MinIO.UploadTimeout)*time.Second)
	defer cancel()

	if err := a.store.Put(putCtx, anonymizedKey, bytes.NewReader(data), int64(len(data)), "application/pdf"); err != nil {
		return fmt.Errorf("无法写入论文 %d 的匿名化副本: %w", paper.ID, err)
	}

	anonymizedURL := a.store.PublicURL(anonymizedKey)
	if err := a.repo.UpdatePaperAnonymization(paper, anonymizedURL, needsReview); err != nil {
		return fmt.Errorf("无法更新论文 %d 的匿名化信息: %w", paper.ID, err)
	}

	if needsReview {
		if err := a.pushAlert(ctx, paper, "匿名化检测到疑似作者信息，需要人工复核"); err != nil {
			return err
		}
	}

	return nil
}

// flagManualReview 处理无法自动完成的任务：标记论文并发出告警，
// 返回 nil 表示任务已终结，不应再重投递
func (a *Anonymizer) flagManualReview(ctx context.Context, paper *domain.Paper, message string) error {
	if err := a.repo.FlagPaperForManualReview(paper); err != nil {
		return fmt.Errorf("无法标记论文 %d 需要人工复核: %w", paper.ID, err)
	}
	return a.pushAlert(ctx, paper, message)
}

func (a *Anonymizer) pushAlert(ctx context.Context, paper *domain.Paper, message string) error {
	alert := &domain.AttentionAlert{
		Kind:      "needs_manual_review",
		PaperID:   paper.ID,
		Title:     paper.Title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := a.alerts.Push(ctx, alert); err != nil {
		return fmt.Errorf("无法写入论文 %d 的告警: %w", paper.ID, err)
	}
	return nil
}

// permanentStorageError 区分对象存储的永久性错误和瞬时错误：
// 对象不存在时重投递没有意义，其余（网络、超时、服务不可用）留给重试
func permanentStorageError(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}
