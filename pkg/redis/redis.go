package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HistoryMessage is one prior chat turn kept for remote-model context.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IRedis keeps short-lived conversation context per user so the remote model
// sees the last few turns. The durable chat log lives in Postgres; this is
// only the working window.
type IRedis interface {
	GetConversation(ctx context.Context, userID string) ([]HistoryMessage, error)
	AppendConversation(ctx context.Context, userID string, msgs []HistoryMessage, ttl time.Duration) error
	ClearConversation(ctx context.Context, userID string) error
}

// maxConversationWindow bounds the prompt size sent to the remote model.
const maxConversationWindow = 20

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func conversationKey(userID string) string {
	return "conversation:" + userID
}

func (r *redisClient) GetConversation(ctx context.Context, userID string) ([]HistoryMessage, error) {
	raw, err := r.client.Get(ctx, conversationKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error reading conversation for user %s: %v", userID, err))
		return nil, err
	}

	var msgs []HistoryMessage
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		// Corrupt window is not worth failing a chat over; start fresh.
		logrus.Warn(fmt.Sprintf("Dropping corrupt conversation window for user %s: %v", userID, err))
		return nil, nil
	}
	return msgs, nil
}

func (r *redisClient) AppendConversation(ctx context.Context, userID string, msgs []HistoryMessage, ttl time.Duration) error {
	existing, err := r.GetConversation(ctx, userID)
	if err != nil {
		return err
	}

	combined := append(existing, msgs...)
	if len(combined) > maxConversationWindow {
		combined = combined[len(combined)-maxConversationWindow:]
	}

	raw, err := json.Marshal(combined)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, conversationKey(userID), raw, ttl).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error writing conversation for user %s: %v", userID, err))
		return err
	}
	return nil
}

func (r *redisClient) ClearConversation(ctx context.Context, userID string) error {
	if _, err := r.client.Del(ctx, conversationKey(userID)).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Error clearing conversation for user %s: %v", userID, err))
		return err
	}
	return nil
}
