package analysis

import (
	"fmt"
	"time"

	"github.com/camille/redite/internal/ports"
)

// Event is the sealed set of messages an analysis emits: any number of
// Progress events followed by exactly one Complete or Failure. Hosts
// must switch over all three variants.
type Event interface {
	isEvent()
}

// Progress reports pipeline advancement, 0–100. Non-decreasing by
// construction, though consumers must not rely on that.
type Progress struct {
	Percent int
	Message string
}

// Complete carries the full result; the terminal success event.
type Complete struct {
	Result ports.Result
}

// Failure carries a human-readable error; the terminal failure event.
type Failure struct {
	Err string
}

func (Progress) isEvent() {}
func (Complete) isEvent() {}
func (Failure) isEvent()  {}

// Engine runs one analysis at a time over an immutable dictionary. It
// holds no other cross-invocation state; every Token, Record, and Result
// is created fresh per call and dropped once delivered.
type Engine struct {
	lem *Lemmatizer
}

// NewEngine builds an engine around a loaded dictionary.
func NewEngine(dict Dictionary, stemFallback bool) *Engine {
	return &Engine{lem: NewLemmatizer(dict, stemFallback)}
}

// eventBuffer holds every event one analysis can emit, so the pipeline
// goroutine never blocks even if the consumer walks away early.
const eventBuffer = 8

// Analyze runs the full pipeline in its own goroutine and streams
// events on the returned channel. The channel is closed after the
// terminal event. There is no cancellation: once started, the analysis
// runs to completion or failure. Panics inside the pipeline are
// recovered and forwarded as a Failure.
func (e *Engine) Analyze(text string) <-chan Event {
	ch := make(chan Event, eventBuffer)

	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				ch <- Failure{Err: fmt.Sprintf("analysis failed: %v", r)}
			}
		}()

		started := time.Now()

		ch <- Progress{Percent: 5, Message: "starting analysis"}
		tokens := Tokenize(text)

		ch <- Progress{Percent: 25, Message: "tokenized"}
		records := Aggregate(tokens, e.lem)

		ch <- Progress{Percent: 60, Message: "lemmas resolved"}
		stats := ports.Stats{
			WordCount:  len(tokens),
			DurationMs: float64(time.Since(started).Microseconds()) / 1000.0,
		}
		result := BuildResult(records, stats)

		ch <- Progress{Percent: 85, Message: "highlights built"}
		ch <- Progress{Percent: 100, Message: "done"}
		ch <- Complete{Result: result}
	}()

	return ch
}
