package notify

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

const channel = "cj:vacancy-events"

// NewRedis creates the Redis client shared by caching and the notify bridge.
func NewRedis() *redis.Client {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	log.Printf("Redis client created (addr: %s)", redisAddr)
	return rdb
}

// Publish pushes a vacancy event onto the shared channel so every API
// instance can fan it out to its own websocket clients.
func Publish(ctx context.Context, rdb *redis.Client, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Error marshaling vacancy event: %v", err)
		return
	}
	if err := rdb.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("Error publishing vacancy event: %v", err)
	}
}

// Subscribe bridges the Redis channel into the local hub. Runs until the
// context is cancelled.
func Subscribe(ctx context.Context, rdb *redis.Client, hub *Hub) {
	sub := rdb.Subscribe(ctx, channel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("Error decoding vacancy event: %v", err)
			continue
		}
		hub.SendToEmployer(ev.EmployerID, ev)
	}
}
