package redis

import "fmt"

// collectionKey returns the Redis key for a named collection
func (s *Storage) collectionKey(name string) string {
	return fmt.Sprintf("%s:%s", s.cfg.KeyPrefix, name)
}
