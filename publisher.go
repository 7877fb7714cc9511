package bankx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"
)

// TransferEvent is published after a transfer commits. Requested is what the
// caller asked to move; Amount includes any interest surcharge.
type TransferEvent struct {
	CorrelationID uuid.UUID       `json:"correlationId"`
	SenderAcctID  snowflake.ID    `json:"senderAccountId"`
	ReceiverAcct  snowflake.ID    `json:"receiverAccountId"`
	ReceiverIBAN  string          `json:"receiverIban"`
	Requested     decimal.Decimal `json:"requested"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Timestamp     time.Time       `json:"timestamp"`
}

//go:generate mockgen -destination=mocks/mock_publisher.go -package=mocks github.com/arhyth/bankx Publisher

type Publisher interface {
	PublishTransfer(ctx context.Context, evt TransferEvent) error
}

type NopPublisher struct{}

func (NopPublisher) PublishTransfer(context.Context, TransferEvent) error {
	return nil
}

type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

var (
	_ Publisher = (*NATSPublisher)(nil)
	_ Publisher = NopPublisher{}
)

func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("bankx"))
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

func (p *NATSPublisher) PublishTransfer(_ context.Context, evt TransferEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.nc.Publish(p.subject, data)
}

// Close flushes pending events before closing the connection.
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
