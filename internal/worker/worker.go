package worker

import "sync"

// Task is a unit of background work, e.g. warming a preview cache entry
// after an upload lands.
type Task func()

// Pool defines a fixed-size worker pool.
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
}

func (p *pool) Submit(t Task) {
	p.jobs <- t
}

// Stop drains queued tasks and waits for in-flight ones to finish.
func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// FakePool runs every task inline. For handler tests.
type FakePool struct {
	Submitted int
}

func (f *FakePool) Submit(t Task) {
	f.Submitted++
	if t != nil {
		t()
	}
}

func (f *FakePool) Stop() {}
