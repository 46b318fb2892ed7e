package mykafka

import (
	"context"
	"strconv"

	"github.com/Skotchmaster/vivero/internal/auth"
	"github.com/Skotchmaster/vivero/internal/cart"
	"github.com/Skotchmaster/vivero/internal/catalog"
	"github.com/Skotchmaster/vivero/internal/checkout"
	"github.com/Skotchmaster/vivero/internal/events"
	"github.com/Skotchmaster/vivero/pkg/logging"
)

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// Buses groups the in-process event streams that are mirrored to kafka.
// Nil buses are skipped.
type Buses struct {
	Catalog  *events.Bus[catalog.Change]
	Cart     *events.Bus[cart.Event]
	Auth     *events.Bus[auth.Event]
	Checkout *events.Bus[checkout.Completed]
}

type orderEvent struct {
	Type string `json:"type"`
	checkout.Completed
}

// Forward publishes every event of b to its topic and returns a func that
// detaches the subscriptions. Publish failures are logged and dropped.
func Forward(p Publisher, b Buses) func() {
	var unsubs []func()

	if b.Catalog != nil {
		unsubs = append(unsubs, b.Catalog.Subscribe(func(ctx context.Context, ev catalog.Change) {
			publish(ctx, p, TopicProducts, strconv.Itoa(ev.Product.ID), ev)
		}))
	}
	if b.Cart != nil {
		unsubs = append(unsubs, b.Cart.Subscribe(func(ctx context.Context, ev cart.Event) {
			publish(ctx, p, TopicCart, "cart", ev)
		}))
	}
	if b.Auth != nil {
		unsubs = append(unsubs, b.Auth.Subscribe(func(ctx context.Context, ev auth.Event) {
			publish(ctx, p, TopicUsers, ev.User.ID, ev)
		}))
	}
	if b.Checkout != nil {
		unsubs = append(unsubs, b.Checkout.Subscribe(func(ctx context.Context, ev checkout.Completed) {
			publish(ctx, p, TopicOrders, ev.OrderID, orderEvent{Type: "order_completed", Completed: ev})
		}))
	}

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func publish(ctx context.Context, p Publisher, topic, key string, event any) {
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "key", key, "error", err)
	}
}
