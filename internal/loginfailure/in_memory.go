package loginfailure

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/lthummus/loginthingie/internal/config"
)

const updateDebounceTime = 100 * time.Millisecond

// InMemoryCounter tracks consecutive login failures per username. Counts
// only ever live in memory, so every user starts fresh when the process
// restarts. Usernames are exact keys; no case folding happens here.
type InMemoryCounter struct {
	lock           *sync.Mutex
	lastUpdateTime time.Time

	failureLimit int
	failures     map[string]int
}

var _ Counter = (*InMemoryCounter)(nil)

func NewInMemoryCounter() *InMemoryCounter {
	failureLimit := viper.GetInt(config.KeyMaxFailedAttempts)

	// we do it this way so we don't mistakenly pollute the config file with our values
	if failureLimit <= 0 {
		failureLimit = config.DefaultMaxFailedAttempts
	}

	log.Info().Int("failure_limit", failureLimit).Msg("initializing login failure counter")

	c := constructCounter(failureLimit)

	config.RegisterForUpdates(func(event fsnotify.Event) {
		c.refreshLimit()
	})

	return c
}

func constructCounter(failureLimit int) *InMemoryCounter {
	return &InMemoryCounter{
		lock: &sync.Mutex{},

		failureLimit: failureLimit,
		failures:     map[string]int{},
	}
}

func (c *InMemoryCounter) refreshLimit() {
	c.lock.Lock()
	defer c.lock.Unlock()

	if time.Since(c.lastUpdateTime) < updateDebounceTime {
		return
	}

	newLimit := viper.GetInt(config.KeyMaxFailedAttempts)
	if newLimit <= 0 {
		newLimit = config.DefaultMaxFailedAttempts
	}

	if newLimit != c.failureLimit {
		log.Info().Int("old_failure_limit", c.failureLimit).Int("new_failure_limit", newLimit).Msg("login failure limit updated")
		c.failureLimit = newLimit
	}

	c.lastUpdateTime = time.Now()
}

func (c *InMemoryCounter) IsUserBlocked(username string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.failures[username] >= c.failureLimit
}

// RecordFailure increments the failure count for username and reports how
// many attempts remain before the account blocks. It keeps counting past the
// limit; the returned value never goes below zero.
func (c *InMemoryCounter) RecordFailure(username string) int {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.failures[username]++

	return max(0, c.failureLimit-c.failures[username])
}

func (c *InMemoryCounter) ClearFailures(username string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.failures, username)
}

// Unblock drops any recorded failures for username and reports whether there
// was anything to clear.
func (c *InMemoryCounter) Unblock(username string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	_, existed := c.failures[username]
	delete(c.failures, username)

	return existed
}
