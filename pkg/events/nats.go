package events

import (
	"context"
	"encoding/json"
	"fmt"

	"payexsync/config"
	"payexsync/dto/model"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Publisher sends transaction events to NATS.
type Publisher struct {
	Conn *nats.Conn
}

// Connect dials NATS_URL. It returns nil, nil when NATS_URL is unset.
func Connect() (*Publisher, error) {
	url := config.Config("NATS_URL", "")
	if url == "" {
		return nil, nil
	}
	conn, err := nats.Connect(url, nats.Name("payexsync"))
	if err != nil {
		return nil, err
	}
	return &Publisher{Conn: conn}, nil
}

func (p *Publisher) Close() {
	if p != nil && p.Conn != nil {
		p.Conn.Close()
	}
}

// Publish sends event as JSON. Each message carries a Nats-Msg-Id header so
// JetStream consumers can drop duplicates.
func (p *Publisher) Publish(ctx context.Context, subject string, event model.TransactionEvent) error {
	if p == nil || p.Conn == nil {
		return nats.ErrConnectionClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := nats.NewMsg(subject)
	msg.Header.Set(nats.MsgIdHdr, uuid.NewString())
	msg.Data = data
	return p.Conn.PublishMsg(msg)
}
