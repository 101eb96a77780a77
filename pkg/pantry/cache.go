package pantry

import (
	"PantryPal-Backend/domain"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const viewCacheTTL = 5 * time.Minute

type (
	// ViewCache caches the two read views per owner. Mutations invalidate
	// both; that invalidation is the only convergence mechanism between
	// writers and readers.
	ViewCache interface {
		GetActiveCount(ctx context.Context, telegramUserID int64) (int64, bool)
		SetActiveCount(ctx context.Context, telegramUserID int64, count int64)
		GetFoodItems(ctx context.Context, telegramUserID int64, queryKey string) ([]domain.FoodItemResponse, bool)
		SetFoodItems(ctx context.Context, telegramUserID int64, queryKey string, items []domain.FoodItemResponse)
		Invalidate(ctx context.Context, telegramUserID int64)
	}

	redisViewCache struct {
		client *redis.Client
	}

	noopViewCache struct{}
)

// NewNoopViewCache is used when no Redis address is configured; every read
// falls through to the store.
func NewNoopViewCache() ViewCache {
	return noopViewCache{}
}

func (noopViewCache) GetActiveCount(context.Context, int64) (int64, bool) { return 0, false }
func (noopViewCache) SetActiveCount(context.Context, int64, int64)        {}
func (noopViewCache) GetFoodItems(context.Context, int64, string) ([]domain.FoodItemResponse, bool) {
	return nil, false
}
func (noopViewCache) SetFoodItems(context.Context, int64, string, []domain.FoodItemResponse) {}
func (noopViewCache) Invalidate(context.Context, int64)                                      {}

func NewRedisViewCache(addr string) (ViewCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisViewCache{client: client}, nil
}

// QueryKey folds a list query into a stable cache key fragment.
func QueryKey(search string, categories []string, status, sortField, direction string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s", search, strings.Join(categories, ","), status, sortField, direction)
	return strconv.FormatUint(h.Sum64(), 16)
}

func countKey(telegramUserID int64) string {
	return fmt.Sprintf("pantry:count:%d", telegramUserID)
}

func itemsKey(telegramUserID int64, queryKey string) string {
	return fmt.Sprintf("pantry:items:%d:%s", telegramUserID, queryKey)
}

func itemsKeySet(telegramUserID int64) string {
	return fmt.Sprintf("pantry:itemkeys:%d", telegramUserID)
}

func (c *redisViewCache) GetActiveCount(ctx context.Context, telegramUserID int64) (int64, bool) {
	value, err := c.client.Get(ctx, countKey(telegramUserID)).Int64()
	if err != nil {
		return 0, false
	}
	return value, true
}

func (c *redisViewCache) SetActiveCount(ctx context.Context, telegramUserID int64, count int64) {
	if err := c.client.Set(ctx, countKey(telegramUserID), count, viewCacheTTL).Err(); err != nil {
		log.Printf("failed to cache active count: %v", err)
	}
}

func (c *redisViewCache) GetFoodItems(ctx context.Context, telegramUserID int64, queryKey string) ([]domain.FoodItemResponse, bool) {
	payload, err := c.client.Get(ctx, itemsKey(telegramUserID, queryKey)).Bytes()
	if err != nil {
		return nil, false
	}

	var items []domain.FoodItemResponse
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *redisViewCache) SetFoodItems(ctx context.Context, telegramUserID int64, queryKey string, items []domain.FoodItemResponse) {
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}

	key := itemsKey(telegramUserID, queryKey)
	if err := c.client.Set(ctx, key, payload, viewCacheTTL).Err(); err != nil {
		log.Printf("failed to cache food items: %v", err)
		return
	}
	// Track the per-query keys so Invalidate can drop every cached list
	// for the owner in one pass.
	if err := c.client.SAdd(ctx, itemsKeySet(telegramUserID), key).Err(); err != nil {
		log.Printf("failed to track cache key: %v", err)
	}
}

func (c *redisViewCache) Invalidate(ctx context.Context, telegramUserID int64) {
	keys, err := c.client.SMembers(ctx, itemsKeySet(telegramUserID)).Result()
	if err != nil && err != redis.Nil {
		log.Printf("failed to list cache keys: %v", err)
	}

	keys = append(keys, countKey(telegramUserID), itemsKeySet(telegramUserID))
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("failed to invalidate pantry cache: %v", err)
	}
}
