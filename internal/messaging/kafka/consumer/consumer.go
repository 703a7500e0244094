package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-attendance/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	maxNotifyAttempts = 3
	retryBackoff      = 2 * time.Second
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type LeaveNotifier interface {
	NotifyLeaveEvent(ctx context.Context, ev events.LeaveLifecycleEvent) error
}

func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	notifier LeaveNotifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		HandleLeaveLifecycleMessage(ctx, reader, notifier, msg, log)
	}
}

// HandleLeaveLifecycleMessage delivers one message and commits it.
// Notifications are best effort: undecodable messages and deliveries that
// still fail after retries are logged and committed so the partition keeps
// moving.
func HandleLeaveLifecycleMessage(
	ctx context.Context,
	reader MessageReader,
	notifier LeaveNotifier,
	msg kafkago.Message,
	log *zap.Logger,
) {
	var event events.LeaveLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave lifecycle event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		commit(ctx, reader, msg, log)
		return
	}

	fields := []zap.Field{
		zap.String("leave_id", event.LeaveID),
		zap.String("event_type", event.EventType),
		zap.String("request_id", headerValue(msg, "request_id")),
	}

	var err error
	for attempt := 1; attempt <= maxNotifyAttempts; attempt++ {
		if err = notifier.NotifyLeaveEvent(ctx, event); err == nil {
			break
		}
		log.Warn("leave notification attempt failed", append(fields, zap.Int("attempt", attempt), zap.Error(err))...)
		if attempt < maxNotifyAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}
	}
	if err != nil {
		log.Error("leave notification dropped", append(fields, zap.Error(err))...)
	}

	if commit(ctx, reader, msg, log) && err == nil {
		log.Info("leave lifecycle event handled", fields...)
	}
}

func commit(ctx context.Context, reader MessageReader, msg kafkago.Message, log *zap.Logger) bool {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit leave lifecycle message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		return false
	}
	return true
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
