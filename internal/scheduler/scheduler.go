// Package scheduler runs the recurring maintenance jobs. Each job owns a
// goroutine with its own timer; jobs never share state and a panicking
// job must not take the process down.
package scheduler

import (
	"log"
	"sync"
	"time"
)

type Scheduler struct {
	wg   sync.WaitGroup
	stop chan struct{}
	once sync.Once
}

func New() *Scheduler {
	return &Scheduler{stop: make(chan struct{})}
}

// Every runs job now and then again after every interval until Stop.
func (s *Scheduler) Every(name string, interval time.Duration, job func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		s.run(name, job)
		for {
			select {
			case <-s.stop:
				return
			case <-t.C:
				s.run(name, job)
			}
		}
	}()
}

// Daily runs job once a day at the given local hour.
func (s *Scheduler) Daily(name string, hour int, job func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			d := untilNextHour(time.Now(), hour)
			t := time.NewTimer(d)
			select {
			case <-s.stop:
				t.Stop()
				return
			case <-t.C:
				s.run(name, job)
			}
		}
	}()
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
}

func (s *Scheduler) run(name string, job func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[scheduler][%s] job panicked: %v", name, r)
		}
	}()
	job()
}

// untilNextHour returns the wait until the next occurrence of hour:00,
// strictly in the future relative to now.
func untilNextHour(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
