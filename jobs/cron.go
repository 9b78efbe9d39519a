package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// TokenPruner drops revocation entries whose tokens have expired anyway.
type TokenPruner interface {
	Prune(now time.Time) int
}

// InitCronJobs registers the maintenance jobs and starts c.
func InitCronJobs(c *cron.Cron, tokens TokenPruner) error {
	if tokens != nil {
		if _, err := c.AddFunc("@hourly", func() { pruneTokens(tokens, time.Now()) }); err != nil {
			return err
		}
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}

func pruneTokens(tokens TokenPruner, now time.Time) {
	if n := tokens.Prune(now); n > 0 {
		log.Printf("Pruned %d expired revoked tokens", n)
	}
}
