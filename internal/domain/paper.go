package domain

import "time"

type PaperStatus string

const (
	PaperStatusSubmitted          PaperStatus = "SUBMITTED"
	PaperStatusUnderReview        PaperStatus = "UNDER_REVIEW"
	PaperStatusAccepted           PaperStatus = "ACCEPTED"
	PaperStatusRejected           PaperStatus = "REJECTED"
	PaperStatusRevisionsRequested PaperStatus = "REVISIONS_REQUESTED"
)

// IsValidPaperStatus 检查给定的字符串是不是五个合法状态之一
func IsValidPaperStatus(s string) bool {
	switch PaperStatus(s) {
	case PaperStatusSubmitted, PaperStatusUnderReview, PaperStatusAccepted,
		PaperStatusRejected, PaperStatusRevisionsRequested:
		return true
	default:
		return false
	}
}

type Paper struct {
	ID                int64       `json:"id"`
	Title             string      `json:"title"`
	Abstract          string      `json:"abstract"`
	Keywords          string      `json:"keywords"` // 逗号分隔
	PdfURL            string      `json:"pdfUrl"`
	AnonymizedPdfURL  *string     `json:"anonymizedPdfUrl"`
	IsAnonymized      bool        `json:"isAnonymized"`
	NeedsManualReview bool        `json:"needsManualReview"`
	Status            PaperStatus `json:"status"`
	AuthorID          int64       `json:"authorID"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
	Version           int32       `json:"-"`
}
