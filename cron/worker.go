// Package cron runs the background side of the system: the asynq worker that
// drains the mail queue and the daily scheduler that queues booking
// reminders.
package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"tidywave/config"
	clientRepo "tidywave/database/repository/client"
	orderRepo "tidywave/database/repository/order"
	"tidywave/models"
	"tidywave/services/mailer"
	"tidywave/utils"
)

const reminderHour = 17 // reminders for tomorrow fire at 17:00 today

// queueRedisOpt is the asynq connection shared by workers and enqueuers.
func queueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient builds the asynq client handed to the mail enqueuer.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(queueRedisOpt())
}

// InitMailWorker runs the asynq worker in the background, retrying startup a
// few times before giving up.
func InitMailWorker(m *mailer.Mailer) {
	srv := asynq.NewServer(
		queueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(mailer.TypeVerificationEmail, handleAccountEmail(m.SendVerification))
	mux.HandleFunc(mailer.TypePasswordResetEmail, handleAccountEmail(m.SendPasswordReset))
	mux.HandleFunc(mailer.TypeOrderReminderEmail, handleOrderReminder(m))

	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MailWorker] attempt %d/%d failed: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[MailWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleAccountEmail(send func(email, name, token string) error) asynq.HandlerFunc {
	return func(_ context.Context, task *asynq.Task) error {
		var p mailer.AccountEmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid account email payload", zap.Error(err), zap.String("type", task.Type()))
			return err
		}
		return send(p.Email, p.Name, p.Token)
	}
}

func handleOrderReminder(m *mailer.Mailer) asynq.HandlerFunc {
	return func(_ context.Context, task *asynq.Task) error {
		var p mailer.OrderReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid order reminder payload", zap.Error(err))
			return err
		}
		return m.SendOrderReminder(p)
	}
}

// InitReminderScheduler queues one reminder email per confirmed booking the
// day before it happens. It scans once at startup and then every 24 hours;
// asynq deduplicates nothing here, so the task ID is derived from the order
// to keep reruns idempotent.
func InitReminderScheduler(orders orderRepo.OrderRepository, clients clientRepo.ClientRepository, enqueuer *mailer.Enqueuer) {
	go func() {
		for {
			scheduleReminders(orders, clients, enqueuer)
			time.Sleep(24 * time.Hour)
		}
	}()
}

func scheduleReminders(orders orderRepo.OrderRepository, clients clientRepo.ClientRepository, enqueuer *mailer.Enqueuer) {
	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")
	fireAt := time.Date(now.Year(), now.Month(), now.Day(), reminderHour, 0, 0, 0, now.Location())
	if !fireAt.After(now) {
		fireAt = now.Add(time.Minute)
	}

	due, err := orders.ListByDate(ctx, tomorrow)
	if err != nil {
		logger.Error("failed to list tomorrow's orders", zap.Error(err))
		return
	}

	queued := 0
	for _, ord := range due {
		if ord.Status != models.StatusConfirmed {
			continue
		}
		client, err := clients.GetByID(ctx, ord.ClientID)
		if err != nil {
			logger.Error("failed to resolve order client", zap.Error(err), zap.String("orderID", ord.ID))
			continue
		}

		payload := mailer.OrderReminderPayload{
			Email:         client.Email,
			Name:          client.FullName,
			OrderID:       ord.ID,
			ScheduledDate: ord.ScheduledDate,
			ScheduledTime: ord.ScheduledTime,
		}
		task, opts, err := mailer.NewOrderReminderTask(payload, fireAt)
		if err != nil {
			logger.Error("failed to build reminder task", zap.Error(err))
			continue
		}
		opts = append(opts, asynq.TaskID("reminder:"+ord.ID+":"+ord.ScheduledDate))
		if _, err := enqueuer.Client.EnqueueContext(ctx, task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
			logger.Error("failed to enqueue reminder", zap.Error(err), zap.String("orderID", ord.ID))
			continue
		}
		queued++
	}

	if queued > 0 {
		logger.Info("booking reminders queued", zap.Int("count", queued), zap.String("date", tomorrow))
	}
}
