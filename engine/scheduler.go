package engine

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/band-battle/core"
)

// Scheduler drives the world on a fixed interval.
// Each firing runs on its own goroutine like an interval timer; a firing that
// lands while a frame is still in progress is dropped, not queued.
type Scheduler struct {
	world    *World
	interval time.Duration
	onFrame  func(live int)

	busy   atomic.Bool
	paused atomic.Bool

	fired   atomic.Uint64
	dropped atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewScheduler creates a scheduler; onFrame runs after every frame (advanced or paused)
func NewScheduler(world *World, interval time.Duration, onFrame func(live int)) *Scheduler {
	return &Scheduler{
		world:    world,
		interval: interval,
		onFrame:  onFrame,
		stopChan: make(chan struct{}),
	}
}

// Fire computes one frame unless another is in progress; reports whether it ran
func (s *Scheduler) Fire() bool {
	if !s.busy.CompareAndSwap(false, true) {
		s.dropped.Add(1)
		return false
	}
	defer s.busy.Store(false)

	var live int
	if s.paused.Load() {
		s.world.NoAnimate()
		live = s.world.Len()
	} else {
		live = s.world.Advance()
	}
	s.fired.Add(1)

	if s.onFrame != nil {
		s.onFrame(live)
	}
	return true
}

// Start begins firing on the interval
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.loop)
	}
}

// Stop halts the loop and waits for in-flight frames
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.wg.Add(1)
			core.Go(func() {
				defer s.wg.Done()
				if !s.Fire() {
					log.Printf("scheduler: frame overrun, dropped tick (total %d)", s.dropped.Load())
				}
			})
		}
	}
}

// Pause freezes game state; frames keep firing so the display stays live
func (s *Scheduler) Pause() {
	s.paused.Store(true)
}

// Resume continues advancing; the first frame after resume starts from a fresh clock
func (s *Scheduler) Resume() {
	s.paused.Store(false)
}

// TogglePause flips the pause state and returns the new state
func (s *Scheduler) TogglePause() bool {
	for {
		old := s.paused.Load()
		if s.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (s *Scheduler) IsPaused() bool { return s.paused.Load() }

// Stats returns completed and dropped firing counts
func (s *Scheduler) Stats() (fired, dropped uint64) {
	return s.fired.Load(), s.dropped.Load()
}

// Run starts the scheduler and blocks until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) {
	s.Start()
	<-ctx.Done()
	s.Stop()
}
