package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hydro-bot/internal/logger"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

type FoodSearcher interface {
	SearchFood(ctx context.Context, query string) (*FoodItem, error)
}

// CachedFoodService кэширует удачные ответы базы продуктов: сначала в памяти
// процесса, затем (если настроен) в Redis. Промахи и ошибки не кэшируются.
type CachedFoodService struct {
	next   FoodSearcher
	local  *expirable.LRU[string, FoodItem]
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedFoodService(next FoodSearcher, size int, ttl time.Duration, rdb *redis.Client, log logger.Logger) *CachedFoodService {
	return &CachedFoodService{
		next:   next,
		local:  expirable.NewLRU[string, FoodItem](size, nil, ttl),
		redis:  rdb,
		ttl:    ttl,
		logger: log,
	}
}

func cacheKey(query string) string {
	return "food:" + strings.ToLower(strings.TrimSpace(query))
}

func (c *CachedFoodService) SearchFood(ctx context.Context, query string) (*FoodItem, error) {
	key := cacheKey(query)

	if item, ok := c.local.Get(key); ok {
		return &item, nil
	}

	if item, ok := c.fromRedis(ctx, key); ok {
		c.local.Add(key, *item)
		return item, nil
	}

	item, err := c.next.SearchFood(ctx, query)
	if err != nil {
		return nil, err
	}

	c.local.Add(key, *item)
	c.toRedis(ctx, key, item)
	return item, nil
}

func (c *CachedFoodService) fromRedis(ctx context.Context, key string) (*FoodItem, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnf("Failed to read food cache %s: %v", key, err)
		}
		return nil, false
	}
	var item FoodItem
	if err := json.Unmarshal(data, &item); err != nil {
		c.logger.Warnf("Corrupted food cache entry %s: %v", key, err)
		return nil, false
	}
	return &item, true
}

func (c *CachedFoodService) toRedis(ctx context.Context, key string, item *FoodItem) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(item)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warnf("Failed to write food cache %s: %v", key, err)
	}
}

// NewRedisClient создает клиент Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
