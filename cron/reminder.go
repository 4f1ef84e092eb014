package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"trimly/config"
	"trimly/models"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// NotificationSender posts reminder notifications upstream.
type NotificationSender interface {
	CreateNotification(ctx context.Context, n models.Notification) error
}

// ReminderScheduler enqueues a reminder task ahead of each confirmed
// appointment.
type ReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
}

func NewReminderScheduler(lead time.Duration) *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderScheduler{client: client, lead: lead}
}

// ScheduleReminder queues a reminder to fire lead-time before the
// appointment. Appointments starting too soon get no reminder.
func (s *ReminderScheduler) ScheduleReminder(appt models.Appointment) error {
	fireAt := appt.TimeAndDate.Add(-s.lead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		BarberID:      appt.BarberID,
		FireDate:      fireAt.Format(time.RFC3339),
		Title:         "Upcoming appointment",
		Body:          fmt.Sprintf("Your appointment starts at %s.", appt.TimeAndDate.Format("3:04 PM")),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal reminder payload: %w", err)
	}

	if _, err := s.client.Enqueue(asynq.NewTask(TypeReminderSend, data), asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(sender NotificationSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
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
	mux.HandleFunc(TypeReminderSend, handleReminderTask(sender))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(sender NotificationSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] firing reminder for appointment %s", p.AppointmentID)

		// Both parties get the reminder; upstream owns device delivery.
		for _, userID := range []string{p.ClientID, p.BarberID} {
			if userID == "" {
				continue
			}
			n := models.Notification{
				UserID: userID,
				Title:  p.Title,
				Body:   p.Body,
			}
			if err := sender.CreateNotification(ctx, n); err != nil {
				log.Printf("[ReminderHandler] failed to post reminder for %s: %v", userID, err)
				return err
			}
		}
		return nil
	}
}
