package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

func (r *Repository) CreatePaper(paper *domain.Paper) error {
	query := `
		INSERT INTO papers (title, abstract, keywords, pdf_url, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, is_anonymized, needs_manual_review, created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{paper.Title, paper.Abstract, paper.Keywords, paper.PdfURL, paper.AuthorID}
	dst := []any{&paper.ID, &paper.Status, &paper.IsAnonymized, &paper.NeedsManualReview, &paper.CreatedAt, &paper.UpdatedAt, &paper.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPaperByID(id int64) (*domain.Paper, error) {
	query := `
		SELECT
			title,
			abstract,
			keywords,
			pdf_url,
			anonymized_pdf_url,
			is_anonymized,
			needs_manual_review,
			status,
			author_id,
			created_at,
			updated_at,
			version
		FROM papers
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	paper := &domain.Paper{
		ID: id,
	}

	dst := []any{
		&paper.Title,
		&paper.Abstract,
		&paper.Keywords,
		&paper.PdfURL,
		&paper.AnonymizedPdfURL,
		&paper.IsAnonymized,
		&paper.NeedsManualReview,
		&paper.Status,
		&paper.AuthorID,
		&paper.CreatedAt,
		&paper.UpdatedAt,
		&paper.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return paper, nil
}

func (r *Repository) getPapers(query string, args ...any) ([]*domain.Paper, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	papers := []*domain.Paper{}
	for rows.Next() {
		var paper domain.Paper
		dst := []any{
			&paper.ID,
			&paper.Title,
			&paper.Abstract,
			&paper.Keywords,
			&paper.PdfURL,
			&paper.AnonymizedPdfURL,
			&paper.IsAnonymized,
			&paper.NeedsManualReview,
			&paper.Status,
			&paper.AuthorID,
			&paper.CreatedAt,
			&paper.UpdatedAt,
			&paper.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		papers = append(papers, &paper)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return papers, nil
}

func (r *Repository) GetAllPapers() ([]*domain.Paper, error) {
	query := `
		SELECT
			id, title, abstract, keywords, pdf_url, anonymized_pdf_url,
			is_anonymized, needs_manual_review, status, author_id,
			created_at, updated_at, version
		FROM papers
		ORDER BY created_at DESC
	`

	return r.getPapers(query)
}

func (r *Repository) GetPapersByAuthorID(authorID int64) ([]*domain.Paper, error) {
	query := `
		SELECT
			id, title, abstract, keywords, pdf_url, anonymized_pdf_url,
			is_anonymized, needs_manual_review, status, author_id,
			created_at, updated_at, version
		FROM papers
		WHERE author_id = $1
		ORDER BY created_at DESC
	`

	return r.getPapers(query, authorID)
}

func (r *Repository) GetPapersByReviewerID(reviewerID int64) ([]*domain.Paper, error) {
	query := `
		SELECT
			p.id, p.title, p.abstract, p.keywords, p.pdf_url, p.anonymized_pdf_url,
			p.is_anonymized, p.needs_manual_review, p.status, p.author_id,
			p.created_at, p.updated_at, p.version
		FROM papers p
		JOIN reviews rv ON rv.paper_id = p.id
		WHERE rv.reviewer_id = $1
		ORDER BY p.created_at DESC
	`

	return r.getPapers(query, reviewerID)
}

// GetPaperReviewerIDs 只取审稿人 id 投影，用于分配时的去重检查
func (r *Repository) GetPaperReviewerIDs(paperID int64) ([]int64, error) {
	query := `
		SELECT reviewer_id FROM reviews WHERE paper_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, paperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviewerIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		reviewerIDs = append(reviewerIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviewerIDs, nil
}

func (r *Repository) UpdatePaperStatus(paper *domain.Paper, status domain.PaperStatus) error {
	query := `
		UPDATE papers
		SET
			status = $1,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING status, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{status, paper.ID, paper.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&paper.Status, &paper.UpdatedAt, &paper.Version); err != nil {
		return err
	}

	return nil
}

// FlagPaperForManualReview 在匿名化无法自动完成时只把论文标记为需要人工复核，
// 不改动匿名化字段
func (r *Repository) FlagPaperForManualReview(paper *domain.Paper) error {
	query := `
		UPDATE papers
		SET
			needs_manual_review = TRUE,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $1
		RETURNING needs_manual_review, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dst := []any{&paper.NeedsManualReview, &paper.UpdatedAt, &paper.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, paper.ID).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// UpdatePaperAnonymization 只由 anonymizer worker 调用
func (r *Repository) UpdatePaperAnonymization(paper *domain.Paper, anonymizedPdfURL string, needsManualReview bool) error {
	query := `
		UPDATE papers
		SET
			anonymized_pdf_url = $1,
			is_anonymized = TRUE,
			needs_manual_review = $2,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $3
		RETURNING anonymized_pdf_url, is_anonymized, needs_manual_review, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{anonymizedPdfURL, needsManualReview, paper.ID}
	dst := []any{&paper.AnonymizedPdfURL, &paper.IsAnonymized, &paper.NeedsManualReview, &paper.UpdatedAt, &paper.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// AssignReviewers 在一个事务中插入评审记录并（在需要时）把论文流转到 UNDER_REVIEW，
// 避免出现带着评审记录却停留在 SUBMITTED 的论文
func (r *Repository) AssignReviewers(paper *domain.Paper, reviewerIDs []int64, updateStatus bool) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	reviews := make([]*domain.Review, 0, len(reviewerIDs))
	for _, reviewerID := range reviewerIDs {
		query := `
			INSERT INTO reviews (paper_id, reviewer_id)
			VALUES ($1, $2)
			RETURNING id, score, comments, completed, created_at, updated_at, version
		`

		review := &domain.Review{
			PaperID:    paper.ID,
			ReviewerID: reviewerID,
		}
		dst := []any{&review.ID, &review.Score, &review.Comments, &review.Completed, &review.CreatedAt, &review.UpdatedAt, &review.Version}
		if err := tx.QueryRowContext(ctx, query, paper.ID, reviewerID).Scan(dst...); err != nil {
			return nil, err
		}

		reviews = append(reviews, review)
	}

	if updateStatus {
		query := `
			UPDATE papers
			SET
				status = $1,
				updated_at = NOW(),
				version = version + 1
			WHERE id = $2 AND version = $3
			RETURNING status, updated_at, version
		`

		args := []any{domain.PaperStatusUnderReview, paper.ID, paper.Version}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&paper.Status, &paper.UpdatedAt, &paper.Version); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return reviews, nil
}
