package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProfilesStorage = (*ProfilesRepository)(nil)
var _ port.AddressesStorage = (*AddressesRepository)(nil)

type ProfilesRepository struct {
	sqldb sqldb
}

func NewProfilesRepository(sqldb sqldb) ProfilesRepository {
	return ProfilesRepository{sqldb}
}

func (r ProfilesRepository) ByUser(
	ctx context.Context, userID string,
) (domain.Profile, error) {
	const op = "ProfilesRepository.ByUser"

	query := `
		SELECT user_id, full_name, email,
			COALESCE(phone, ''), COALESCE(avatar_url, '')
		FROM profiles
		WHERE user_id = $1`

	var p domain.Profile
	err := r.sqldb.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.Email, &p.Phone, &p.AvatarURL,
	)
	if err != nil {
		if isNoRows(err) {
			return domain.Profile{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProfilesRepository) Upsert(
	ctx context.Context, p domain.Profile,
) error {
	const op = "ProfilesRepository.Upsert"

	query := `
		INSERT INTO profiles (user_id, full_name, email, phone, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			avatar_url = EXCLUDED.avatar_url`

	_, err := r.sqldb.ExecContext(ctx, query,
		p.UserID, p.FullName, p.Email, p.Phone, p.AvatarURL,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r ProfilesRepository) SetAvatarURL(
	ctx context.Context, userID, url string,
) error {
	const op = "ProfilesRepository.SetAvatarURL"

	res, err := r.sqldb.ExecContext(ctx,
		"UPDATE profiles SET avatar_url = $1 WHERE user_id = $2", url, userID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affectedOrNotFound(res, op)
}

// AddressesRepository owns the single-default invariant: every write
// that makes an address the default first clears the flag on all the
// user's other addresses, inside one transaction.
type AddressesRepository struct {
	sqldb sqldb
}

func NewAddressesRepository(sqldb sqldb) AddressesRepository {
	return AddressesRepository{sqldb}
}

func (r AddressesRepository) ListByUser(
	ctx context.Context, userID string,
) ([]domain.Address, error) {
	const op = "AddressesRepository.ListByUser"

	query := `
		SELECT id, user_id, COALESCE(label, ''), line1, COALESCE(line2, ''),
			city, COALESCE(region, ''), COALESCE(postal_code, ''),
			country, COALESCE(phone, ''), is_default
		FROM user_addresses
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	as := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		err := rows.Scan(
			&a.ID, &a.UserID, &a.Label, &a.Line1, &a.Line2,
			&a.City, &a.Region, &a.PostalCode, &a.Country,
			&a.Phone, &a.IsDefault,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		as = append(as, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return as, nil
}

func (r AddressesRepository) Insert(
	ctx context.Context, a domain.Address,
) (_ domain.Address, insertErr error) {
	const op = "AddressesRepository.Insert"

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer endTx(tx, op, &insertErr)

	if a.IsDefault {
		err := clearDefaults(ctx, tx, a.UserID)
		if err != nil {
			return domain.Address{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	query := `
		INSERT INTO user_addresses (
			user_id, label, line1, line2, city, region,
			postal_code, country, phone, is_default
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err = tx.QueryRowContext(ctx, query,
		a.UserID, a.Label, a.Line1, a.Line2, a.City, a.Region,
		a.PostalCode, a.Country, a.Phone, a.IsDefault,
	).Scan(&a.ID)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func (r AddressesRepository) Update(
	ctx context.Context, a domain.Address,
) (updateErr error) {
	const op = "AddressesRepository.Update"

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer endTx(tx, op, &updateErr)

	if a.IsDefault {
		if err := clearDefaults(ctx, tx, a.UserID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	query := `
		UPDATE user_addresses SET
			label = $1, line1 = $2, line2 = $3, city = $4, region = $5,
			postal_code = $6, country = $7, phone = $8, is_default = $9
		WHERE id = $10 AND user_id = $11`

	res, err := tx.ExecContext(ctx, query,
		a.Label, a.Line1, a.Line2, a.City, a.Region,
		a.PostalCode, a.Country, a.Phone, a.IsDefault,
		a.ID, a.UserID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affectedOrNotFound(res, op)
}

func (r AddressesRepository) Delete(
	ctx context.Context, userID string, addressID int64,
) error {
	const op = "AddressesRepository.Delete"

	res, err := r.sqldb.ExecContext(ctx,
		"DELETE FROM user_addresses WHERE id = $1 AND user_id = $2",
		addressID, userID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affectedOrNotFound(res, op)
}

func (r AddressesRepository) SetDefault(
	ctx context.Context, userID string, addressID int64,
) (setErr error) {
	const op = "AddressesRepository.SetDefault"

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer endTx(tx, op, &setErr)

	if err := clearDefaults(ctx, tx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE user_addresses SET is_default = TRUE
		WHERE id = $1 AND user_id = $2`,
		addressID, userID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affectedOrNotFound(res, op)
}

func clearDefaults(ctx context.Context, tx *sql.Tx, userID string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE user_addresses SET is_default = FALSE WHERE user_id = $1",
		userID,
	)
	return err
}
