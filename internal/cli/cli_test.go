package cli

import (
	"bytes"
	"context"
	"testing"

	"go-attendance/internal/balance"
	"go-attendance/internal/messaging/kafka"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type drainingOutbox struct {
	pending []kafka.OutboxEvent
	lists   int
}

func (d *drainingOutbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return d }

func (d *drainingOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error { return nil }

func (d *drainingOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	d.lists++
	n := min(limit, len(d.pending))
	return append([]kafka.OutboxEvent(nil), d.pending[:n]...), nil
}

func (d *drainingOutbox) MarkSent(ctx context.Context, id uuid.UUID) error {
	for i, e := range d.pending {
		if e.ID == id {
			d.pending = append(d.pending[:i], d.pending[i+1:]...)
			break
		}
	}
	return nil
}

func (d *drainingOutbox) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return nil
}

type countingWriter struct{ n int }

func (w *countingWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	w.n += len(msgs)
	return nil
}

func commandWithContext() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestPrintBalance(t *testing.T) {
	var buf bytes.Buffer
	err := printBalance(&buf, balance.BalanceResponse{
		EmployeeID: "e-1",
		Balances: map[string]balance.BalanceEntry{
			"sick":   {Total: 10, Remaining: 10},
			"annual": {Total: 21, Used: 3.5, Remaining: 17.5, Gated: true},
		},
	})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "employee e-1", string(lines[0]))
	assert.Contains(t, string(lines[1]), "REMAINING")
	assert.Regexp(t, `^annual\s+21\s+3\.5\s+17\.5\s+true$`, string(lines[2]))
	assert.Regexp(t, `^sick\s+10\s+0\s+10\s+false$`, string(lines[3]))
}

func TestFlushOutbox(t *testing.T) {
	t.Run("drains every batch", func(t *testing.T) {
		repo := &drainingOutbox{}
		for i := 0; i < 120; i++ {
			repo.pending = append(repo.pending, kafka.OutboxEvent{
				ID:          uuid.New(),
				AggregateID: uuid.NewString(),
				EventType:   "leave.submitted",
				Topic:       "hr.leave.lifecycle.v1",
				Payload:     []byte(`{}`),
			})
		}
		writer := &countingWriter{}

		total, err := flushOutbox(commandWithContext(), repo, writer, 10)

		require.NoError(t, err)
		assert.Equal(t, 120, total)
		assert.Equal(t, 120, writer.n)
		assert.Empty(t, repo.pending)
		assert.Equal(t, 4, repo.lists)
	})

	t.Run("stops at max batches", func(t *testing.T) {
		repo := &drainingOutbox{}
		for i := 0; i < 120; i++ {
			repo.pending = append(repo.pending, kafka.OutboxEvent{
				ID:          uuid.New(),
				AggregateID: uuid.NewString(),
				Payload:     []byte(`{}`),
			})
		}

		total, err := flushOutbox(commandWithContext(), repo, &countingWriter{}, 1)

		require.NoError(t, err)
		assert.Equal(t, 50, total)
		assert.Len(t, repo.pending, 70)
	})
}

func TestMigrateDown_RejectsZeroSteps(t *testing.T) {
	rootCmd.SetArgs([]string{"migrate", "down", "--steps", "0"})
	rootCmd.SetOut(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		_ = migrateDownCmd.Flags().Set("steps", "1")
	})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--steps must be positive")
}

func TestOperatorAccess(t *testing.T) {
	assert.True(t, operatorAccess{}.IsAdmin("anything"))
	assert.Equal(t, operatorRole, operator().Role)
}
