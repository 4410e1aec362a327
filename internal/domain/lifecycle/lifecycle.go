// Package lifecycle holds shared constants for application lifecycle hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown steps run in fx lifecycle hooks.
const DefaultTimeout = 10 * time.Second
