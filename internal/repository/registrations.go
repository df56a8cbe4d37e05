package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

func (r *Repository) CreateRegistration(registration *domain.Registration) error {
	query := `
		INSERT INTO registrations (user_id, type)
		VALUES ($1, $2)
		RETURNING id, is_paid, badge_url, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{registration.UserID, registration.Type}
	dst := []any{&registration.ID, &registration.IsPaid, &registration.BadgeURL, &registration.CreatedAt, &registration.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRegistrationByUserID(userID int64) (*domain.Registration, error) {
	query := `
		SELECT id, type, is_paid, badge_url, created_at, version
		FROM registrations WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	registration := &domain.Registration{
		UserID: userID,
	}

	dst := []any{&registration.ID, &registration.Type, &registration.IsPaid, &registration.BadgeURL, &registration.CreatedAt, &registration.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return registration, nil
}

func (r *Repository) GetRegistrationByID(id int64) (*domain.Registration, error) {
	query := `
		SELECT user_id, type, is_paid, badge_url, created_at, version
		FROM registrations WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	registration := &domain.Registration{
		ID: id,
	}

	dst := []any{&registration.UserID, &registration.Type, &registration.IsPaid, &registration.BadgeURL, &registration.CreatedAt, &registration.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return registration, nil
}

func (r *Repository) UpdateRegistration(registration *domain.Registration) error {
	query := `
		UPDATE registrations
		SET
			is_paid = $1,
			badge_url = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{registration.IsPaid, registration.BadgeURL, registration.ID, registration.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&registration.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllRegistrations() ([]*domain.Registration, error) {
	query := `
		SELECT id, user_id, type, is_paid, badge_url, created_at, version
		FROM registrations
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]*domain.Registration, 0)
	for rows.Next() {
		registration := &domain.Registration{}
		dst := []any{&registration.ID, &registration.UserID, &registration.Type, &registration.IsPaid, &registration.BadgeURL, &registration.CreatedAt, &registration.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		registrations = append(registrations, registration)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return registrations, nil
}
