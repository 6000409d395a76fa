package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/curator-sh/curator/internal/bulk"
	"github.com/curator-sh/curator/internal/index"
	"github.com/curator-sh/curator/internal/logger"
	redisstore "github.com/curator-sh/curator/internal/store/redis"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	RedisClient *redis.Client      // Redis client connection
	Store       *redisstore.Store  // Durable record/tag/category storage
	MemoryIndex *index.MemoryIndex // In-memory working set

	Recategorizer *bulk.Recategorizer
	TagMerger     *bulk.TagMerger
	Resolver      *bulk.Resolver

	SeedReloadTrigger chan struct{} // Channel to trigger manual seed reload
	ScanTrigger       chan struct{} // Channel to trigger manual duplicate scan

	AdminBurst        int  // rate limit burst for mutating admin routes
	AdminRefillPerMin int  // rate limit refill for mutating admin routes
	TrustProxy        bool // resolve client IPs from proxy headers
}

// Now returns the injected clock, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
