package attention

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

func newTestList(t *testing.T) *List {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewList(client, "attention_alerts_test")
}

func TestPushAndRecent(t *testing.T) {
	l := newTestList(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		alert := &domain.AttentionAlert{
			Kind:      "needs_manual_review",
			PaperID:   int64(i),
			Title:     fmt.Sprintf("论文 %d", i),
			Message:   "匿名化检测到疑似作者信息，需要人工复核",
			CreatedAt: time.Now(),
		}
		if err := l.Push(ctx, alert); err != nil {
			t.Fatalf("Push 失败: %v", err)
		}
	}

	alerts, err := l.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent 失败: %v", err)
	}

	if len(alerts) != 3 {
		t.Fatalf("告警数量 = %d，期望 3", len(alerts))
	}

	// 最新的应该在最前面
	if alerts[0].PaperID != 3 {
		t.Errorf("第一条告警的论文 ID = %d，期望 3", alerts[0].PaperID)
	}
}

func TestRecentLimit(t *testing.T) {
	l := newTestList(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		alert := &domain.AttentionAlert{Kind: "needs_manual_review", PaperID: int64(i)}
		if err := l.Push(ctx, alert); err != nil {
			t.Fatalf("Push 失败: %v", err)
		}
	}

	alerts, err := l.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent 失败: %v", err)
	}
	if len(alerts) != 2 {
		t.Errorf("告警数量 = %d，期望 2", len(alerts))
	}
}

func TestListTrimsOldAlerts(t *testing.T) {
	l := newTestList(t)
	ctx := context.Background()

	for i := 1; i <= maxAlerts+10; i++ {
		alert := &domain.AttentionAlert{Kind: "needs_manual_review", PaperID: int64(i)}
		if err := l.Push(ctx, alert); err != nil {
			t.Fatalf("Push 失败: %v", err)
		}
	}

	alerts, err := l.Recent(ctx, maxAlerts*2)
	if err != nil {
		t.Fatalf("Recent 失败: %v", err)
	}
	if len(alerts) != maxAlerts {
		t.Errorf("告警数量 = %d，期望被裁剪到 %d", len(alerts), maxAlerts)
	}

	// 最旧的 10 条应该被挤掉了
	last := alerts[len(alerts)-1]
	if last.PaperID != 11 {
		t.Errorf("最旧一条告警的论文 ID = %d，期望 11", last.PaperID)
	}
}

func TestClear(t *testing.T) {
	l := newTestList(t)
	ctx := context.Background()

	if err := l.Push(ctx, &domain.AttentionAlert{Kind: "needs_manual_review", PaperID: 1}); err != nil {
		t.Fatalf("Push 失败: %v", err)
	}

	if err := l.Clear(ctx); err != nil {
		t.Fatalf("Clear 失败: %v", err)
	}

	alerts, err := l.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent 失败: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("清空后告警数量 = %d，期望 0", len(alerts))
	}
}
