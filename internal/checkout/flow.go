// Package checkout drives the order form, its validation and the simulated
// payment that empties the cart.
package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/vivero/internal/cart"
	"github.com/Skotchmaster/vivero/internal/events"
	"github.com/Skotchmaster/vivero/pkg/logging"
)

const (
	DefaultDelay = 2 * time.Second

	Shipping     = "Gratis"
	EmptyMessage = "Tu carrito está vacío"
)

var ErrProcessing = errors.New("checkout: payment already in progress")

type State string

const (
	StateEmpty      State = "empty"
	StateForm       State = "form"
	StateProcessing State = "processing"
	StateSuccess    State = "success"
)

type Summary struct {
	Items      []cart.Item `json:"items"`
	Count      int         `json:"count"`
	Subtotal   string      `json:"subtotal"`
	Shipping   string      `json:"shipping"`
	Total      string      `json:"total"`
	TotalValue float64     `json:"total_value"`
}

func summarize(items []cart.Item) Summary {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	total := cart.Total(items)
	return Summary{
		Items:      items,
		Count:      n,
		Subtotal:   cart.FormatTotal(total),
		Shipping:   Shipping,
		Total:      cart.FormatTotal(total),
		TotalValue: total,
	}
}

type View struct {
	State   State    `json:"state"`
	Message string   `json:"message,omitempty"`
	Summary *Summary `json:"summary,omitempty"`
	OrderID string   `json:"order_id,omitempty"`
}

// Completed is published once per successful payment.
type Completed struct {
	OrderID  string  `json:"order_id"`
	Customer Form    `json:"customer"`
	Order    Summary `json:"order"`
}

type Flow struct {
	mu         sync.Mutex
	processing bool
	lastOrder  *Completed

	cart   *cart.Store
	delay  time.Duration
	events *events.Bus[Completed]
}

// NewFlow binds the flow to c. Adding to the cart after a successful payment
// takes the flow back to the form.
func NewFlow(c *cart.Store, delay time.Duration, bus *events.Bus[Completed]) *Flow {
	f := &Flow{cart: c, delay: delay, events: bus}
	if b := c.Events(); b != nil {
		b.Subscribe(func(_ context.Context, ev cart.Event) {
			if ev.Kind == cart.ItemAdded {
				f.Reset()
			}
		})
	}
	return f
}

func (f *Flow) Events() *events.Bus[Completed] { return f.events }

func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view()
}

func (f *Flow) view() View {
	switch {
	case f.lastOrder != nil:
		order := f.lastOrder.Order
		return View{State: StateSuccess, Summary: &order, OrderID: f.lastOrder.OrderID}
	case f.processing:
		s := summarize(f.cart.Items())
		return View{State: StateProcessing, Summary: &s}
	}
	items := f.cart.Items()
	if len(items) == 0 {
		return View{State: StateEmpty, Message: EmptyMessage}
	}
	s := summarize(items)
	return View{State: StateForm, Summary: &s}
}

// Submit validates form and runs the simulated payment. With an empty cart
// nothing is validated and the current view is returned as is.
func (f *Flow) Submit(ctx context.Context, form Form) (View, error) {
	l := logging.FromContext(ctx).With("component", "checkout")

	f.mu.Lock()
	if f.processing {
		f.mu.Unlock()
		return View{State: StateProcessing}, ErrProcessing
	}
	items := f.cart.Items()
	if len(items) == 0 {
		v := f.view()
		f.mu.Unlock()
		return v, nil
	}

	form.Zip = SanitizeZip(form.Zip)
	if errs := Validate(form); len(errs) > 0 {
		v := f.view()
		f.mu.Unlock()
		return v, &ValidationError{Fields: errs}
	}
	f.processing = true
	f.mu.Unlock()

	l.Info("checkout_processing", "items", len(items))

	// the simulated payment cannot be aborted once started
	ctx = context.WithoutCancel(ctx)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	done := Completed{OrderID: uuid.NewString(), Customer: form, Order: summarize(items)}

	f.mu.Lock()
	f.processing = false
	f.lastOrder = &done
	f.mu.Unlock()

	// Clear publishes a cart event; the flow only resets on additions.
	f.cart.Clear(ctx)
	f.events.Publish(ctx, done)

	l.Info("checkout_success", "order_id", done.OrderID, "total", done.Order.Total)
	order := done.Order
	return View{State: StateSuccess, Summary: &order, OrderID: done.OrderID}, nil
}

// Processing reports whether a simulated payment is in flight.
func (f *Flow) Processing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processing
}

// Reset leaves the success view, as "Volver a la tienda" does.
func (f *Flow) Reset() {
	f.mu.Lock()
	f.lastOrder = nil
	f.mu.Unlock()
}
