package services

import (
	"context"
	"errors"
	"log"
	"time"

	"lexbook/internal/caching"
	"lexbook/internal/models"
	"lexbook/internal/repositories"

	"github.com/google/uuid"
)

// ErrServiceNotFound is returned for catalog lookups of unknown ids.
var ErrServiceNotFound = errors.New("service not found")

const catalogCacheTTL = 10 * time.Minute

// CatalogService serves the public services catalog, fronted by redis.
// Cache failures degrade to database reads, never to request failures.
type CatalogService interface {
	List(ctx context.Context) ([]*models.Service, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Service, error)
}

type catalogService struct {
	serviceRepo repositories.ServiceRepository
	cache       caching.CacheService
}

func NewCatalogService(serviceRepo repositories.ServiceRepository, cache caching.CacheService) CatalogService {
	return &catalogService{
		serviceRepo: serviceRepo,
		cache:       cache,
	}
}

func (s *catalogService) List(ctx context.Context) ([]*models.Service, error) {
	if cached, err := s.cache.GetServiceList(ctx); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("WARN: service list cache read failed: %v", err)
	}

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetServiceList(ctx, services, catalogCacheTTL); err != nil {
		log.Printf("WARN: service list cache write failed: %v", err)
	}
	return services, nil
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	if cached, err := s.cache.GetService(ctx, id); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("WARN: service cache read failed: %v", err)
	}

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if err := s.cache.SetService(ctx, svc, catalogCacheTTL); err != nil {
		log.Printf("WARN: service cache write failed: %v", err)
	}
	return svc, nil
}
