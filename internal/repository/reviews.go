package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

func (r *Repository) GetReviewByID(id int64) (*domain.Review, error) {
	query := `
		SELECT paper_id, reviewer_id, score, comments, completed, created_at, updated_at, version
		FROM reviews WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	review := &domain.Review{
		ID: id,
	}

	dst := []any{&review.PaperID, &review.ReviewerID, &review.Score, &review.Comments, &review.Completed, &review.CreatedAt, &review.UpdatedAt, &review.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return review, nil
}

func (r *Repository) GetReviewsByPaperID(paperID int64) ([]*domain.Review, error) {
	query := `
		SELECT id, reviewer_id, score, comments, completed, created_at, updated_at, version
		FROM reviews
		WHERE paper_id = $1
		ORDER BY created_at ASC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, paperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review := &domain.Review{
			PaperID: paperID,
		}
		dst := []any{&review.ID, &review.ReviewerID, &review.Score, &review.Comments, &review.Completed, &review.CreatedAt, &review.UpdatedAt, &review.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

// GetAssignedReviews 获取某个审稿人的全部评审任务，未完成的在前、创建早的在前，
// 附带论文的摘要信息，PDF 替换为匿名化版本（如果有）
func (r *Repository) GetAssignedReviews(reviewerID int64) ([]*domain.AssignedReview, error) {
	query := `
		SELECT
			rv.id,
			rv.paper_id,
			rv.score,
			rv.comments,
			rv.completed,
			rv.created_at,
			rv.updated_at,
			rv.version,
			p.title,
			p.abstract,
			COALESCE(p.anonymized_pdf_url, p.pdf_url)
		FROM reviews rv
		JOIN papers p ON p.id = rv.paper_id
		WHERE rv.reviewer_id = $1
		ORDER BY rv.completed ASC, rv.created_at ASC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, reviewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assigned := make([]*domain.AssignedReview, 0)
	for rows.Next() {
		ar := &domain.AssignedReview{}
		ar.ReviewerID = reviewerID

		dst := []any{
			&ar.ID,
			&ar.PaperID,
			&ar.Score,
			&ar.Comments,
			&ar.Completed,
			&ar.CreatedAt,
			&ar.UpdatedAt,
			&ar.Version,
			&ar.Paper.Title,
			&ar.Paper.Abstract,
			&ar.Paper.PdfURL,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		ar.Paper.ID = ar.PaperID

		assigned = append(assigned, ar)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assigned, nil
}

// UpdateReviewSubmission 写入评分和意见并把评审标记为已完成
func (r *Repository) UpdateReviewSubmission(review *domain.Review, score int32, comments string) error {
	query := `
		UPDATE reviews
		SET
			score = $1,
			comments = $2,
			completed = TRUE,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING score, comments, completed, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{score, comments, review.ID, review.Version}
	dst := []any{&review.Score, &review.Comments, &review.Completed, &review.UpdatedAt, &review.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllReviews() ([]*domain.Review, error) {
	query := `
		SELECT id, paper_id, reviewer_id, score, comments, completed, created_at, updated_at, version
		FROM reviews
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review := &domain.Review{}
		dst := []any{&review.ID, &review.PaperID, &review.ReviewerID, &review.Score, &review.Comments, &review.Completed, &review.CreatedAt, &review.UpdatedAt, &review.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}
