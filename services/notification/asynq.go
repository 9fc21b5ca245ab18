package notification

import (
	"context"
	"encoding/json"

	"bookwell/config"
	"bookwell/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TaskAppointmentNotify = "appointment:notify"

// NotifyPayload is the task body consumed by the notification worker.
type NotifyPayload struct {
	AppointmentID string `json:"appointment_id"`
	Event         string `json:"event"`
}

// AsynqService enqueues notification tasks onto Redis for background delivery.
type AsynqService struct {
	client *asynq.Client
}

func NewAsynqService() *AsynqService {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqService{client: client}
}

func (s *AsynqService) Notify(ctx context.Context, appointmentID, event string) {
	logger := utils.GetLogger()
	payload, err := json.Marshal(NotifyPayload{AppointmentID: appointmentID, Event: event})
	if err != nil {
		logger.Error("failed to marshal notification payload", zap.Error(err))
		return
	}
	task := asynq.NewTask(TaskAppointmentNotify, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		logger.Error("failed to enqueue notification",
			zap.String("appointmentID", appointmentID),
			zap.String("event", event),
			zap.Error(err))
	}
}

func (s *AsynqService) Close() error {
	return s.client.Close()
}
