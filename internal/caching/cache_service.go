package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"lexbook/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService fronts the services catalog with redis. A miss is
// (nil, nil), never an error; callers fall through to the database.
type CacheService interface {
	GetService(ctx context.Context, serviceID uuid.UUID) (*models.Service, error)
	SetService(ctx context.Context, service *models.Service, ttl time.Duration) error
	GetServiceList(ctx context.Context) ([]*models.Service, error)
	SetServiceList(ctx context.Context, services []*models.Service, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

// NewCacheServiceFromClient wraps an existing client; used by tests.
func NewCacheServiceFromClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetService(ctx context.Context, serviceID uuid.UUID) (*models.Service, error) {
	key := fmt.Sprintf("lexbook:service:%s", serviceID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var svc models.Service
	if err := json.Unmarshal(data, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *redisCacheService) SetService(ctx context.Context, service *models.Service, ttl time.Duration) error {
	key := fmt.Sprintf("lexbook:service:%s", service.ID.String())
	data, err := json.Marshal(service)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) GetServiceList(ctx context.Context) ([]*models.Service, error) {
	data, err := r.client.Get(ctx, "lexbook:services").Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var services []*models.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *redisCacheService) SetServiceList(ctx context.Context, services []*models.Service, ttl time.Duration) error {
	data, err := json.Marshal(services)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "lexbook:services", data, ttl).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
