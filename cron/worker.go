package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"slotswapper/config"
	"slotswapper/services/swap"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeSwapReclaim = "swap:reclaim"

// InitReclaimWorker runs the async worker that sweeps abandoned pending
// swap requests, releasing slots locked by negotiations nobody resolved.
func InitReclaimWorker(swapSvc swap.SwapService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSwapReclaim, handleReclaimTask(swapSvc))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	interval := config.AppConfig.SwapReclaimIntervalMin
	if interval <= 0 {
		interval = 15
	}
	spec := fmt.Sprintf("@every %dm", interval)
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeSwapReclaim, nil)); err != nil {
		log.Fatalf("[ReclaimWorker] failed to register periodic reclaim task: %v", err)
	}

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		log.Println("[ReclaimWorker] starting periodic scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Printf("[ReclaimWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReclaimWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReclaimWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReclaimWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReclaimTask(swapSvc swap.SwapService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		reclaimed, err := swapSvc.ReclaimStale(ctx)
		if err != nil {
			log.Printf("[ReclaimWorker] sweep failed: %v", err)
			return err
		}
		if reclaimed > 0 {
			log.Printf("[ReclaimWorker] released %d abandoned swap request(s)", reclaimed)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReclaimWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
