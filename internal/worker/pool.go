// Package worker replays game transcripts in parallel on a pool of goroutines.
package worker

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// WorkItem is one transcript to replay from the starting position.
type WorkItem struct {
	Transcript string
	Index      int // Position in the submitted batch
}

// ReplayResult is the outcome of replaying one transcript.
type ReplayResult struct {
	Index int
	Board *chess.Board
	Moves []chess.Move

	// Winner is only meaningful when HasWinner is set.
	Winner    chess.Colour
	HasWinner bool

	// FEN of the final position, or of the position before the failing move.
	FEN   string
	Error error
}

// ReplayFunc replays a work item.
type ReplayFunc func(item WorkItem) ReplayResult

// Pool runs a ReplayFunc over submitted items on a fixed number of workers.
type Pool struct {
	numWorkers int
	bufferSize int
	workChan   chan WorkItem
	resultChan chan ReplayResult
	replay     ReplayFunc
	wg         sync.WaitGroup
	stopped    atomic.Bool
	failFast   bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// WithFailFast stops the pool as soon as a replay returns an error. Items
// still queued at that point are discarded and produce no result.
func WithFailFast() PoolOption {
	return func(p *Pool) {
		p.failFast = true
	}
}

// NewPool creates a pool. Without options it has one worker and a buffer of 10.
func NewPool(replay ReplayFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		bufferSize: 10,
		replay:     replay,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ReplayResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue
		}
		res := p.replay(item)
		if p.failFast && res.Error != nil {
			p.Stop()
		}
		p.resultChan <- res
	}
}

// Submit queues an item, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop makes workers discard queued items instead of replaying them.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the work channel, waits for the workers and then closes the
// result channel.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the channel of finished replays, in completion order.
func (p *Pool) Results() <-chan ReplayResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Replayer returns a ReplayFunc that plays each transcript on a fresh board
// with the given configuration.
func Replayer(cfg *config.Config) ReplayFunc {
	return func(item WorkItem) ReplayResult {
		board := engine.NewInitialBoard()
		moves, err := engine.PlayTranscript(board, item.Transcript, cfg)
		res := ReplayResult{
			Index: item.Index,
			Board: board,
			Moves: moves,
			FEN:   engine.BoardToFEN(board),
			Error: err,
		}
		res.Winner, res.HasWinner = engine.ResolveWinner(board)
		return res
	}
}

// ReplayAll replays every transcript and returns the results in input order.
// With WithFailFast the results may stop short of the input.
func ReplayAll(transcripts []string, cfg *config.Config, opts ...PoolOption) []ReplayResult {
	pool := NewPool(Replayer(cfg), opts...)
	pool.Start()

	go func() {
		for i, t := range transcripts {
			pool.Submit(WorkItem{Transcript: t, Index: i})
		}
		pool.Close()
	}()

	results := make([]ReplayResult, 0, len(transcripts))
	for r := range pool.Results() {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}
