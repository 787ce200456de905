package webhook

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gestimo/rentd/internal/model"
)

// PaymentEvent is a rent payment reported by an external payment provider.
type PaymentEvent struct {
	OrgID      uuid.UUID
	ContractID uuid.UUID
	Amount     float64
	PaidAt     time.Time
	Method     model.PaymentMethod
	Reference  string
}

// Recorder applies a payment event to the owning contract.
type Recorder interface {
	RecordExternalPayment(ctx context.Context, orgID, contractID uuid.UUID, amount float64, paidAt time.Time, method model.PaymentMethod, reference string) error
}

// Queue decouples webhook ingestion from payment recording. Enqueue never
// blocks the HTTP handler: when the buffer is full the event is dropped and
// the caller is told so.
type Queue struct {
	events   chan PaymentEvent
	recorder Recorder
	log      zerolog.Logger
}

func NewQueue(size int, recorder Recorder, log zerolog.Logger) *Queue {
	if size <= 0 {
		size = 256
	}
	return &Queue{
		events:   make(chan PaymentEvent, size),
		recorder: recorder,
		log:      log,
	}
}

// Enqueue offers an event to the buffer and reports whether it was accepted.
func (q *Queue) Enqueue(event PaymentEvent) bool {
	select {
	case q.events <- event:
		return true
	default:
		q.log.Warn().
			Str("contract_id", event.ContractID.String()).
			Float64("amount", event.Amount).
			Msg("payment event dropped, queue full")
		return false
	}
}

// Run consumes events until ctx is cancelled. A failed event is logged and
// skipped; the provider retries through its own redelivery policy.
func (q *Queue) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-q.events:
			err := q.recorder.RecordExternalPayment(ctx, event.OrgID, event.ContractID, event.Amount, event.PaidAt, event.Method, event.Reference)
			if err != nil {
				q.log.Error().Err(err).
					Str("contract_id", event.ContractID.String()).
					Msg("record external payment")
			}
		}
	}
}
