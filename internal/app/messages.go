package app

import "time"

// TickMsg triggers a simulation step and a frame update.
type TickMsg time.Time
