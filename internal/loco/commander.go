package loco

import (
	"fmt"
	"sync"
)

// Commander sends each value to the backend only when it differs from the
// last value sent. The first value of every kind is always sent. A failed
// send is not remembered, so the next call retries it.
type Commander struct {
	backend Backend

	mu          sync.Mutex
	speed       *int
	brake       *int
	frontLights *LightStatus
	backLights  *LightStatus
	bell        *bool
	horn        *bool
}

func NewCommander(backend Backend) *Commander {
	return &Commander{backend: backend}
}

func (c *Commander) Backend() Backend { return c.backend }

// SetSpeed sends speed clamped to 0-100 percent.
func (c *Commander) SetSpeed(speed int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dedup(&c.speed, clampPercent(speed), c.backend.SendSpeed, "speed")
}

// SetBrake sends brake clamped to 0-100 percent.
func (c *Commander) SetBrake(brake int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dedup(&c.brake, clampPercent(brake), c.backend.SendBrake, "brake")
}

func (c *Commander) SetFrontLights(status LightStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dedup(&c.frontLights, status, c.backend.SendFrontLights, "front lights")
}

func (c *Commander) SetBackLights(status LightStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dedup(&c.backLights, status, c.backend.SendBackLights, "back lights")
}

func (c *Commander) SetBell(active bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dedup(&c.bell, active, c.backend.SendBell, "bell")
}

func (c *Commander) SetHorn(active bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dedup(&c.horn, active, c.backend.SendHorn, "horn")
}

func dedup[T comparable](last **T, value T, send func(T) error, what string) error {
	if *last != nil && **last == value {
		return nil
	}
	if err := send(value); err != nil {
		return fmt.Errorf("send %s: %w", what, err)
	}
	v := value
	*last = &v
	return nil
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
