package domain

import "time"

// AnonymizeTask 是投递到 anonymize_queue 的任务，由 anonymizer worker 消费
type AnonymizeTask struct {
	PaperID int64 `json:"paperID"`
}

// AttentionAlert 是需要管理员人工介入的告警，存放在 redis 的告警列表中
type AttentionAlert struct {
	Kind      string    `json:"kind"`
	PaperID   int64     `json:"paperID"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
