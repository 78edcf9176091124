package store

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const engagementChannel = "engagement.updates"

// RedisEngagementStore keeps counters in Redis hashes and broadcasts changes
// over pub/sub so every API instance observes writes from the others.
type RedisEngagementStore struct {
	client *redis.Client
}

func NewRedisEngagementStore(client *redis.Client) *RedisEngagementStore {
	return &RedisEngagementStore{client: client}
}

func engagementKey(recipeID string) string {
	return "engagement:" + recipeID
}

func (s *RedisEngagementStore) Increment(ctx context.Context, recipeID string, kind EngagementKind) (Engagement, error) {
	if _, err := ParseEngagementKind(string(kind)); err != nil {
		return Engagement{}, err
	}

	if err := s.client.HIncrBy(ctx, engagementKey(recipeID), string(kind), 1).Err(); err != nil {
		return Engagement{}, fmt.Errorf("failed to increment %s for %s: %w", kind, recipeID, err)
	}

	// best-effort broadcast; a missed notification only delays cache refresh
	if err := s.client.Publish(ctx, engagementChannel, recipeID).Err(); err != nil {
		log.Printf("engagement publish failed for %s: %v", recipeID, err)
	}

	return s.Get(ctx, recipeID)
}

func (s *RedisEngagementStore) Get(ctx context.Context, recipeID string) (Engagement, error) {
	fields, err := s.client.HGetAll(ctx, engagementKey(recipeID)).Result()
	if err != nil {
		return Engagement{}, fmt.Errorf("failed to read engagement for %s: %w", recipeID, err)
	}
	return engagementFromFields(fields), nil
}

func (s *RedisEngagementStore) GetAll(ctx context.Context, recipeIDs []string) (map[string]Engagement, error) {
	out := make(map[string]Engagement, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}

	pipe := s.client.Pipeline()
	cmds := make(map[string]*redis.MapStringStringCmd, len(recipeIDs))
	for _, id := range recipeIDs {
		cmds[id] = pipe.HGetAll(ctx, engagementKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to read engagement batch: %w", err)
	}

	for id, cmd := range cmds {
		out[id] = engagementFromFields(cmd.Val())
	}
	return out, nil
}

func (s *RedisEngagementStore) Subscribe(ctx context.Context, fn func(recipeID string)) error {
	sub := s.client.Subscribe(ctx, engagementChannel)
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fn(msg.Payload)
			}
		}
	}()
	return nil
}

func engagementFromFields(fields map[string]string) Engagement {
	likes, _ := strconv.ParseInt(fields[string(KindLikes)], 10, 64)
	shares, _ := strconv.ParseInt(fields[string(KindShares)], 10, 64)
	return Engagement{Likes: likes, Shares: shares}
}

// RedisSearchStore keeps each user's recent queries in a capped Redis list.
type RedisSearchStore struct {
	client *redis.Client
}

func NewRedisSearchStore(client *redis.Client) *RedisSearchStore {
	return &RedisSearchStore{client: client}
}

func searchKey(userID string) string {
	return "recent_searches:" + userID
}

func (s *RedisSearchStore) Record(ctx context.Context, userID, query string) error {
	key := searchKey(userID)
	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, key, 0, query)
	pipe.LPush(ctx, key, query)
	pipe.LTrim(ctx, key, 0, RecentSearchLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record search for %s: %w", userID, err)
	}
	return nil
}

func (s *RedisSearchStore) Recent(ctx context.Context, userID string) ([]string, error) {
	items, err := s.client.LRange(ctx, searchKey(userID), 0, RecentSearchLimit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent searches for %s: %w", userID, err)
	}
	return items, nil
}
