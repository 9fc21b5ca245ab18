package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"bookwell/config"
	appointmentRepo "bookwell/database/repository/appointment"
	"bookwell/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitNotifyWorker runs the async notification worker in background.
func InitNotifyWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TaskAppointmentNotify, handleNotifyTask)

	go monitorRedisConnection()

	go func() {
		log.Println("[NotifyWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotifyWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotifyWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleNotifyTask(ctx context.Context, task *asynq.Task) error {
	var p notification.NotifyPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[NotifyHandler] Invalid payload: %v", err)
		return err
	}

	// Delivery channels (email, push) hang off here; the core only records
	// the event.
	log.Printf("[NotifyHandler] appointment %s: %s", p.AppointmentID, p.Event)
	return nil
}

// InitLockSweeper periodically reclaims expired holds. Conflict checks
// already ignore expired holds by predicate, so this sweep only bounds
// collection growth; its interval is not a correctness knob.
func InitLockSweeper(repo appointmentRepo.AppointmentRepository, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			removed, err := repo.DeleteExpired(ctx, time.Now())
			cancel()
			if err != nil {
				log.Printf("[LockSweeper] sweep failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("[LockSweeper] reclaimed %d expired holds", removed)
			}
		}
	}()
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
			log.Printf("[NotifyWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
