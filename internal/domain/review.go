package domain

import "time"

type Review struct {
	ID         int64     `json:"id"`
	PaperID    int64     `json:"paperID"`
	ReviewerID int64     `json:"reviewerID"`
	Score      *int32    `json:"score"` // 1~10，未提交前为 nil
	Comments   *string   `json:"comments"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Version    int32     `json:"-"`
}

// AssignedReview 是审稿人工作台中的一条待审记录，附带匿名化后的论文摘要信息
type AssignedReview struct {
	Review
	Paper struct {
		ID       int64  `json:"id"`
		Title    string `json:"title"`
		Abstract string `json:"abstract"`
		PdfURL   string `json:"pdfUrl"` // 已替换为匿名化后的 PDF（如果有）
	} `json:"paper"`
}
