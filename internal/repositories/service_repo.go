package repositories

import (
	"context"

	"lexbook/internal/models"

	"github.com/google/uuid"
)

type ServiceRepository interface {
	List(ctx context.Context) ([]*models.Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	Create(ctx context.Context, service *models.Service) error
}

type serviceRepo struct {
	db Database
}

func NewServiceRepo(db Database) ServiceRepository {
	return &serviceRepo{db: db}
}

func (r *serviceRepo) List(ctx context.Context) ([]*models.Service, error) {
	query := `
		SELECT id, name, price, created_at
		FROM services
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		svc := &models.Service{}
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Price, &svc.CreatedAt); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func (r *serviceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	svc := &models.Service{}
	query := `
		SELECT id, name, price, created_at
		FROM services
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&svc.ID, &svc.Name, &svc.Price, &svc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (r *serviceRepo) Create(ctx context.Context, service *models.Service) error {
	query := `
		INSERT INTO services (id, name, price, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, service.ID, service.Name, service.Price)
	return err
}
