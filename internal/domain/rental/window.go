package rental

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidWindow   = errors.New("window end must be after start")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter code")
)

// Window is a half-open rental interval [start, end).
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

func ReconstructWindow(start, end time.Time) Window {
	return Window{start: start, end: end}
}

func (w Window) Start() time.Time        { return w.start }
func (w Window) End() time.Time          { return w.end }
func (w Window) Duration() time.Duration { return w.end.Sub(w.start) }
func (w Window) IsZero() bool            { return w.start.IsZero() && w.end.IsZero() }

// Within reports whether w is fully contained in outer (boundaries may touch).
func (w Window) Within(outer Window) bool {
	return !w.start.Before(outer.start) && !w.end.After(outer.end)
}

// Covers reports whether w fully contains other.
func (w Window) Covers(other Window) bool {
	return other.Within(w)
}

// Overlaps reports whether the two half-open intervals intersect.
func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

// Started reports whether the window start has been reached at now.
func (w Window) Started(now time.Time) bool {
	return !now.Before(w.start)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s,%s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}

// Money is an optional amount in minor units with an ISO currency code.
type Money struct {
	cents    int64
	currency string
}

func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	return Money{cents: cents, currency: currency}, nil
}

func (m Money) Cents() int64     { return m.cents }
func (m Money) Currency() string { return m.currency }
func (m Money) IsZero() bool     { return m.cents == 0 && m.currency == "" }

type Quantity struct {
	value int
}

func NewQuantity(v int) (Quantity, error) {
	if v <= 0 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: v}, nil
}

func (q Quantity) Int() int { return q.value }
