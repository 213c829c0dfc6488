package waves

import (
	"time"
)

type Option func(*Client)

func WithMaxAge(val time.Duration) Option {
	return func(c *Client) {
		c.maxAge = val
	}
}
