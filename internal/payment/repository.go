package payment

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
)

const ProviderPaybyrd = "PAYBYRD"

// WebhookRepository is the audit trail of authenticated webhook deliveries.
type WebhookRepository interface {
	// SaveWebhook records a delivery. Redeliveries of an identical payload
	// are reported as duplicates with id 0.
	SaveWebhook(
		ctx context.Context,
		provider string,
		status string,
		orderRef string,
		payload json.RawMessage,
	) (webhookID int64, isDuplicate bool, err error)

	MarkWebhookProcessed(ctx context.Context, webhookID int64, outcome string) error
	MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error
}

type webhookRepository struct {
	db *sql.DB
}

func NewWebhookRepository(db *sql.DB) WebhookRepository {
	return &webhookRepository{db: db}
}

// PayloadDigest identifies a delivery by the sha256 of its raw body.
func PayloadDigest(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func (r *webhookRepository) SaveWebhook(
	ctx context.Context,
	provider string,
	status string,
	orderRef string,
	payload json.RawMessage,
) (int64, bool, error) {

	const q = `
	INSERT INTO payment_webhooks (
		provider,
		event_id,
		status,
		order_ref,
		payload
	)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (provider, event_id)
	DO NOTHING
	RETURNING id;
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		q,
		provider,
		PayloadDigest(payload),
		status,
		orderRef,
		[]byte(payload),
	).Scan(&id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, true, nil
		}
		return 0, false, err
	}

	return id, false, nil
}

func (r *webhookRepository) MarkWebhookProcessed(
	ctx context.Context,
	webhookID int64,
	outcome string,
) error {

	const q = `
	UPDATE payment_webhooks
	SET processed_at = now(), outcome = $2, process_error = NULL
	WHERE id = $1;
	`

	_, err := r.db.ExecContext(ctx, q, webhookID, outcome)
	return err
}

func (r *webhookRepository) MarkWebhookFailed(
	ctx context.Context,
	webhookID int64,
	reason string,
) error {

	const q = `
	UPDATE payment_webhooks
	SET process_error = $2
	WHERE id = $1;
	`

	_, err := r.db.ExecContext(ctx, q, webhookID, reason)
	return err
}
