package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

const watermarkKeyPrefix = "parcelnews:watermark:"

func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// WatermarkStore persists the poller's per-source "last seen update time" so a
// restarted poller resumes where the previous run left off.
type WatermarkStore struct{}

func NewWatermarkStore() *WatermarkStore {
	return &WatermarkStore{}
}

func (s *WatermarkStore) Watermark(source string) (time.Time, error) {
	val, err := Redis.Get(Ctx, watermarkKeyPrefix+source).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, val)
}

func (s *WatermarkStore) SetWatermark(source string, t time.Time) error {
	return Redis.Set(Ctx, watermarkKeyPrefix+source, t.Format(time.RFC3339Nano), 0).Err()
}
