package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"zapis/internal/availability"
)

const slotTTL = 5 * time.Minute

// SlotCache кэширует рассчитанные слоты в Redis.
// Ключ включает счётчик поколения бизнеса: любое изменение расписания
// или броней инкрементирует счётчик, и старые ключи просто истекают по TTL.
type SlotCache struct {
	client *redis.Client
}

func NewSlotCache(client *redis.Client) *SlotCache {
	return &SlotCache{client: client}
}

func generationKey(businessID int64) string {
	return fmt.Sprintf("avail:gen:%d", businessID)
}

func (c *SlotCache) Generation(ctx context.Context, businessID int64) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}

	gen, err := c.client.Get(ctx, generationKey(businessID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("ошибка чтения поколения кэша: %w", err)
	}

	return gen, nil
}

// BumpGeneration сбрасывает кэш слотов бизнеса.
func (c *SlotCache) BumpGeneration(ctx context.Context, businessID int64) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Incr(ctx, generationKey(businessID)).Err(); err != nil {
		return fmt.Errorf("ошибка инкремента поколения кэша: %w", err)
	}

	return nil
}

func slotKey(businessID, generation, offeringID int64, locationID *int64, date string) string {
	loc := int64(0)
	if locationID != nil {
		loc = *locationID
	}
	return fmt.Sprintf("avail:%d:%d:%d:%d:%s", businessID, generation, offeringID, loc, date)
}

func (c *SlotCache) GetSlots(ctx context.Context, businessID, generation, offeringID int64, locationID *int64, date string) (*availability.Result, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, slotKey(businessID, generation, offeringID, locationID, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения кэша слотов: %w", err)
	}

	var result availability.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("ошибка разбора кэша слотов: %w", err)
	}

	return &result, nil
}

func (c *SlotCache) PutSlots(ctx context.Context, businessID, generation, offeringID int64, locationID *int64, date string, result availability.Result) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("ошибка сериализации слотов: %w", err)
	}

	key := slotKey(businessID, generation, offeringID, locationID, date)
	if err := c.client.Set(ctx, key, raw, slotTTL).Err(); err != nil {
		return fmt.Errorf("ошибка записи кэша слотов: %w", err)
	}

	return nil
}
