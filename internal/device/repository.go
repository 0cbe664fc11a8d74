package device

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gotejo/backend/internal/models"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, k *models.DeviceKey) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO device_keys (id, account_id, key_hash, key_prefix, is_active)
		VALUES ($1, $2, $3, $4, $5)
	`, k.ID, k.AccountID, k.KeyHash, k.KeyPrefix, k.IsActive)
	return err
}

// Delete removes a key. Owner-scoped so one account cannot revoke another's key.
func (r *Repository) Delete(ctx context.Context, id, accountID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM device_keys WHERE id = $1 AND account_id = $2
	`, id, accountID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListByAccountID returns all device keys for the given account.
func (r *Repository) ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]*models.DeviceKey, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, key_hash, key_prefix, is_active, created_at
		FROM device_keys WHERE account_id = $1 ORDER BY created_at
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.DeviceKey
	for rows.Next() {
		var k models.DeviceKey
		if err := rows.Scan(&k.ID, &k.AccountID, &k.KeyHash, &k.KeyPrefix, &k.IsActive, &k.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &k)
	}
	if list == nil {
		list = []*models.DeviceKey{}
	}
	return list, rows.Err()
}

// FindAccountByKeyHash resolves the account that owns an active key with the
// given hash, or an error if no such key exists.
func (r *Repository) FindAccountByKeyHash(ctx context.Context, keyHash string) (*models.Account, error) {
	var acc models.Account
	err := r.pool.QueryRow(ctx, `
		SELECT ac.id, ac.name, ac.email, ac.password_hash, ac.created_at
		FROM device_keys k
		INNER JOIN accounts ac ON ac.id = k.account_id
		WHERE k.key_hash = $1 AND k.is_active = TRUE
	`, keyHash).Scan(&acc.ID, &acc.Name, &acc.Email, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
