package cache

import (
	"os"

	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeCache sets up the in-process cache used for todo-list reads.
// The service runs as a single instance, so the memory backend is enough.
func InitializeCache() cache.Cache {
	c, err := cache.New(cache.Config{
		Type: "memory",
	})
	if err != nil {
		logger.Error("Failed to initialize cache:", zap.Error(err))
		os.Exit(1)
	}
	return c
}
