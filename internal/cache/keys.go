package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%s"
	CategoriesKeyPrefix = "categories:user:%s"
)

const (
	UserTTL       = 5 * time.Minute
	CategoriesTTL = 10 * time.Minute
)

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func CategoriesKey(userID string) string {
	return fmt.Sprintf(CategoriesKeyPrefix, userID)
}

func (s *Store) InvalidateUser(ctx context.Context, userID string) {
	s.Invalidate(ctx, UserKey(userID))
}

func (s *Store) InvalidateCategories(ctx context.Context, userID string) {
	s.Invalidate(ctx, CategoriesKey(userID))
}

// InvalidateAllCategories drops every user's cached category list. Global
// categories appear in all of them, so a change to the global set must reach
// every user.
func (s *Store) InvalidateAllCategories(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	iter := s.client.Scan(ctx, 0, fmt.Sprintf(CategoriesKeyPrefix, "*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == 100 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return s.client.Del(ctx, keys...).Err()
	}
	return nil
}
