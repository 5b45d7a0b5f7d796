package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/okonari/okonari-board/src/api/types"
)

const streamChat = "okonari.chat"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishChatMessage mirrors a stored chat message onto the chat stream so
// out-of-process consumers can follow the room without polling the API.
func PublishChatMessage(ctx context.Context, rdb *redis.Client, msg types.ChatMessage) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamChat,
		Values: map[string]interface{}{
			"id":          msg.ID,
			"displayName": msg.DisplayName,
			"message":     msg.Message,
			"time":        msg.CreatedAt.Unix(),
		},
	}).Result()
	return err
}
