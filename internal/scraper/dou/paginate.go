package dou

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go-dou-scraper/internal/scraper"
)

// State of the pagination driver.
type State int

const (
	StateExpandable State = iota
	StateExhausted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateExpandable:
		return "expandable"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Outcome describes how the listing was expanded.
type Outcome struct {
	Expansions int
	// Stall is set when the driver passed through StateFailed. It wraps
	// scraper.ErrPaginationStall and is informational only.
	Stall error
}

// Stalled reports whether expansion ended on a failure instead of a hidden control.
func (o Outcome) Stalled() bool {
	return o.Stall != nil
}

// PaginatorOptions bounds the expansion loop.
type PaginatorOptions struct {
	// WaitTimeout bounds each wait for the control. Defaults to 10s.
	WaitTimeout time.Duration
	// MaxExpansions stops after that many clicks. 0 means no cap.
	MaxExpansions int
}

// Paginator clicks the load more control until the listing is exhausted.
type Paginator struct {
	opts PaginatorOptions
}

func NewPaginator(opts PaginatorOptions) *Paginator {
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = 10 * time.Second
	}
	if opts.MaxExpansions < 0 {
		opts.MaxExpansions = 0
	}
	return &Paginator{opts: opts}
}

// Expand drives r from StateExpandable to StateExhausted. A missing or
// broken control ends the loop without an error; only context
// cancellation is returned.
func (p *Paginator) Expand(ctx context.Context, r scraper.Renderer) (Outcome, error) {
	var outcome Outcome
	state := StateExpandable

	for state != StateExhausted {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		switch state {
		case StateExpandable:
			if p.opts.MaxExpansions > 0 && outcome.Expansions >= p.opts.MaxExpansions {
				log.Printf("    ⏹️ Reached expansion cap (%d)", p.opts.MaxExpansions)
				state = StateExhausted
				continue
			}

			next, err := p.step(r)
			if err != nil {
				outcome.Stall = fmt.Errorf("%w after %d expansions: %w", scraper.ErrPaginationStall, outcome.Expansions, err)
				state = StateFailed
				continue
			}
			if next == StateExpandable {
				outcome.Expansions++
				log.Printf("    ➕ Loaded more vacancies (%d)", outcome.Expansions)
			}
			state = next

		case StateFailed:
			log.Printf("    ⚠️ %v, treating listing as exhausted", outcome.Stall)
			state = StateExhausted
		}
	}

	return outcome, nil
}

// step performs one check of the control and clicks it when visible.
func (p *Paginator) step(r scraper.Renderer) (State, error) {
	control, err := r.FindLoadMore(p.opts.WaitTimeout)
	if err != nil {
		return StateFailed, fmt.Errorf("locate load more: %w", err)
	}

	style, err := control.Style()
	if err != nil {
		return StateFailed, fmt.Errorf("read load more style: %w", err)
	}
	if isHidden(style) {
		return StateExhausted, nil
	}

	if err := control.Click(); err != nil {
		return StateFailed, fmt.Errorf("click load more: %w", err)
	}
	return StateExpandable, nil
}

// isHidden reports whether an inline style suppresses display.
func isHidden(style string) bool {
	compact := strings.ToLower(strings.Join(strings.Fields(style), ""))
	return strings.Contains(compact, "display:none")
}
