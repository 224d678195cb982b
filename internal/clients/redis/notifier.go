package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/casalivre/casalivre-backend/internal/logger"
)

// SignatureNotification is what downstream delivery workers (email, WhatsApp)
// consume. Dispatching the actual message is their problem, not ours.
type SignatureNotification struct {
	DocumentID     string `json:"document_id"`
	DocumentNumber string `json:"document_number"`
	DocumentName   string `json:"document_name"`
	SignatureID    string `json:"signature_id"`
	SignerName     string `json:"signer_name"`
	SignerEmail    string `json:"signer_email"`
	SignerRole     string `json:"signer_role"`
	SignatureToken string `json:"signature_token"`
	DeadlineAt     string `json:"deadline_at,omitempty"`
}

type SignatureNotifier interface {
	Publish(ctx context.Context, n SignatureNotification) error
	Close() error
}

type signatureNotifier struct {
	log    *logger.Logger
	rdb    *goredis.Client
	stream string
}

func NewSignatureNotifier(log *logger.Logger) (SignatureNotifier, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	stream := strings.TrimSpace(os.Getenv("REDIS_SIGNATURE_STREAM"))
	if stream == "" {
		stream = "document_signatures"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &signatureNotifier{
		log:    log.With("client", "RedisSignatureNotifier"),
		rdb:    rdb,
		stream: stream,
	}, nil
}

func (n *signatureNotifier) Publish(ctx context.Context, notification SignatureNotification) error {
	if n == nil || n.rdb == nil {
		return fmt.Errorf("signature notifier not initialized")
	}
	raw, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.rdb.XAdd(ctx, &goredis.XAddArgs{
		Stream: n.stream,
		Values: map[string]interface{}{"payload": string(raw)},
	}).Err(); err != nil {
		return fmt.Errorf("xadd notification: %w", err)
	}
	n.log.Debug("Published signature notification", "signature_id", notification.SignatureID)
	return nil
}

func (n *signatureNotifier) Close() error {
	if n == nil || n.rdb == nil {
		return nil
	}
	return n.rdb.Close()
}
