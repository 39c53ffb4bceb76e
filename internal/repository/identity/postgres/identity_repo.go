package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskAdmin/internal/logger"
	"taskAdmin/internal/models/identity"
	repo "taskAdmin/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

// GetPlatformAdmin ищет учётную запись в реестре администраторов платформы
func (s *Storage) GetPlatformAdmin(ctx context.Context, id uuid.UUID) (identity.Identity, error) {
	start := time.Now()

	query := `SELECT
				id,
				name,
				email,
				elevated
				FROM platform_admins
				WHERE id = $1`

	ident := identity.Identity{Kind: identity.KindPlatformAdmin}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&ident.ID,
		&ident.Name,
		&ident.Email,
		&ident.Elevated,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Identity{}, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить администратора платформы", err, zap.Duration("ms", time.Since(start)))
		return identity.Identity{}, fmt.Errorf("получение администратора платформы: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return ident, nil
}

// GetCompanyMember ищет только активных сотрудников: неактивные не могут действовать
func (s *Storage) GetCompanyMember(ctx context.Context, id uuid.UUID) (identity.Identity, error) {
	start := time.Now()

	query := `SELECT
				id,
				company_id,
				first_name || ' ' || last_name,
				email,
				role,
				active_status
				FROM company_members
				WHERE id = $1 AND active_status = $2`

	ident := identity.Identity{Kind: identity.KindCompanyMember}
	err := s.pool.QueryRow(ctx, query, id, identity.StatusActive).Scan(
		&ident.ID,
		&ident.CompanyID,
		&ident.Name,
		&ident.Email,
		&ident.Role,
		&ident.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Identity{}, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить сотрудника компании", err, zap.Duration("ms", time.Since(start)))
		return identity.Identity{}, fmt.Errorf("получение сотрудника компании: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return ident, nil
}
