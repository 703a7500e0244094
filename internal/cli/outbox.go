package cli

import (
	"errors"
	"fmt"

	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/messaging/kafka/producer"
	"go-attendance/internal/shared/connection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(outboxCmd)
	outboxCmd.AddCommand(outboxFlushCmd)

	outboxFlushCmd.Flags().Int("max-batches", 20, "Stop after N batches even if events remain")
}

var outboxCmd = &cobra.Command{
	Use:   "outbox",
	Short: "Work with the event outbox",
}

var outboxFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Publish pending outbox events once, without the worker loop",
	Args:  cobra.NoArgs,
	RunE:  runOutboxFlush,
}

func runOutboxFlush(cmd *cobra.Command, args []string) error {
	maxBatches, _ := cmd.Flags().GetInt("max-batches")
	if maxBatches <= 0 {
		return errors.New("--max-batches must be positive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, 1)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 1)
	if err != nil {
		return err
	}
	defer writer.Close()

	total, err := flushOutbox(cmd, kafka.NewOutboxRepository(gormDB), writer, maxBatches)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "published %d event(s)\n", total)
	return nil
}

// flushOutbox drains batches until one comes back with nothing sent.
func flushOutbox(cmd *cobra.Command, repo kafka.OutboxRepository, writer producer.MessageWriter, maxBatches int) (int, error) {
	logger := zap.L().Named("cli.outbox")
	total := 0
	for i := 0; i < maxBatches; i++ {
		sent, err := producer.ProcessPendingEvents(cmd.Context(), repo, writer, logger)
		if err != nil {
			return total, err
		}
		total += sent
		if sent == 0 {
			break
		}
	}
	return total, nil
}
