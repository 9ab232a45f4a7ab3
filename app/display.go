package app

import (
	"sync"
)

// CounterDisplay is the rendered number of one counter.
type CounterDisplay interface {
	Value() int
	SetValue(value int)
}

// LikeIcon is the rendered like glyph: filled when liked, outline otherwise. Pulse is the
// short highlight played after every confirmed toggle.
type LikeIcon interface {
	SetLiked(liked bool)
	SetPulse(on bool)
}

// MemoryCounter is a CounterDisplay held in memory. OnChange, when set, is called after every
// update with the new value.
type MemoryCounter struct {
	mu       sync.RWMutex
	value    int
	OnChange func(value int)
}

func NewMemoryCounter(initial int) *MemoryCounter {
	return &MemoryCounter{value: initial}
}

func (c *MemoryCounter) Value() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.value
}

func (c *MemoryCounter) SetValue(value int) {
	c.mu.Lock()
	c.value = value
	onChange := c.OnChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(value)
	}
}

type MemoryIcon struct {
	mu       sync.RWMutex
	liked    bool
	pulse    bool
	OnChange func()
}

func NewMemoryIcon(liked bool) *MemoryIcon {
	return &MemoryIcon{liked: liked}
}

func (i *MemoryIcon) Liked() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.liked
}

func (i *MemoryIcon) Pulsing() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.pulse
}

func (i *MemoryIcon) SetLiked(liked bool) {
	i.mu.Lock()
	i.liked = liked
	onChange := i.OnChange
	i.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

func (i *MemoryIcon) SetPulse(on bool) {
	i.mu.Lock()
	i.pulse = on
	onChange := i.OnChange
	i.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}
