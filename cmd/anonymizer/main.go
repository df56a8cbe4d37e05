package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/anonymizer"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/attention"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * 读取配置文件
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接数据库
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", slog.String("error", err.Error()))
		return
	}
	defer dbpool.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("无法连接到数据库", slog.String("error", err.Error()))
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * 连接对象存储和 redis
	 **********************************************/
	paperStore, err := storage.NewPaperStore(cfg)
	if err != nil {
		logger.Error("无法连接到对象存储", slog.String("error", err.Error()))
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	alerts := attention.NewList(rdb, "attention_alerts")

	worker := anonymizer.New(cfg, repo, paperStore, alerts)

	/**********************************************
	 * 连接 RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	// 声明队列
	q, err := ch.QueueDeclare(
		"anonymize_queue", // 队列名称
		true,              // 是否持久化
		false,             // 是否自动删除，设置为 false 可以避免没有消费者的时候自动删除队列
		false,             // 是否独占
		false,             // 是否不等待，设置为 false，即等待 RabbitMQ 确认队列是否创建成功
		nil,               // 额外参数
	)
	if err != nil {
		logger.Error("无法声明队列", slog.String("error", err.Error()))
		return
	}

	// 监听 CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 消费消息
	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("无法消费消息", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 用于关闭 goroutine 的上下文
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("收到消息", slog.String("message", string(msg.Body)))

				task := domain.AnonymizeTask{}
				if err := json.Unmarshal(msg.Body, &task); err != nil {
					logger.Error("任务反序列化失败", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				taskCtx, taskCancel := context.WithTimeout(ctx, time.Duration(cfg.Anonymizer.FetchTimeout)*time.Second)
				if err := worker.Process(taskCtx, &task); err != nil {
					taskCancel()
					logger.Error("匿名化处理失败", slog.Int64("paperID", task.PaperID), slog.String("error", err.Error()))
					// 走到这里的都是瞬时错误（数据库、对象存储不可用），
					// 永久性失败已在 Process 内部转人工复核并正常返回
					_ = msg.Nack(false, true)
					continue
				}
				taskCancel()

				logger.Info("匿名化处理完成", slog.Int64("paperID", task.PaperID))
				_ = msg.Ack(false)
			}
		}
	}()

	// 等待 CTRL+C 信号
	logger.Info("等待消息...（按 CTRL+C 退出）")
	<-sigChan

	// 优雅退出
	slog.Info("正在关闭 anonymizer worker...")
	cancel()
	wg.Wait() // 等待所有 goroutine 完成
	slog.Info("anonymizer worker 已成功关闭")
}
