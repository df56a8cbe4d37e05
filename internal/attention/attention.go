package attention

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

// 需要人工介入的告警存放在 redis 的一个列表中，供管理员收件箱读取
// 匿名化失败或检测到作者信息泄露时由 anonymizer worker 写入
// 告警只是提示，不会阻塞任何论文状态的流转

const maxAlerts = 200

type List struct {
	client *redis.Client
	key    string
}

func NewList(client *redis.Client, key string) *List {
	return &List{
		client: client,
		key:    key,
	}
}

func (l *List) Push(ctx context.Context, alert *domain.AttentionAlert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	pipe := l.client.TxPipeline()
	pipe.LPush(ctx, l.key, data)
	pipe.LTrim(ctx, l.key, 0, maxAlerts-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	return nil
}

// Recent 返回最近的 n 条告警，最新的在前
func (l *List) Recent(ctx context.Context, n int64) ([]*domain.AttentionAlert, error) {
	items, err := l.client.LRange(ctx, l.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	alerts := make([]*domain.AttentionAlert, 0, len(items))
	for _, item := range items {
		alert := &domain.AttentionAlert{}
		if err := json.Unmarshal([]byte(item), alert); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	return alerts, nil
}

func (l *List) Clear(ctx context.Context) error {
	return l.client.Del(ctx, l.key).Err()
}
