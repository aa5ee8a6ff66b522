// app/seenmw.go
package app

import (
	"time"

	"equiptrack/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// TouchLastSeen bumps the admin's last_seen_at, throttled through Redis so a
// busy admin does not hammer the table on every request.
func TouchLastSeen(repo *db.Repo, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("adminID")
		if !ok {
			c.Next()
			return
		}
		aid, _ := v.(string)
		if aid == "" {
			c.Next()
			return
		}

		key := "admin:lastseen:" + aid
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = repo.TouchAdminSeen(c, aid) // 忽略错误，不阻塞请求
		}
		c.Next()
	}
}
