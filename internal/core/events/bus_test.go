package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rootslab/opsfinance/internal"
	"github.com/rootslab/opsfinance/internal/core/events"
)

func TestEventBus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Bus Suite")
}

// logCapture is a slog.Handler that keeps every record for assertions.
type logCapture struct {
	mu      sync.Mutex
	entries []capturedEntry
}

type capturedEntry struct {
	message string
	attrs   map[string]interface{}
}

func (c *logCapture) Enabled(context.Context, slog.Level) bool { return true }

func (c *logCapture) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]interface{})
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, capturedEntry{message: r.Message, attrs: attrs})
	return nil
}

func (c *logCapture) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *logCapture) WithGroup(string) slog.Handler      { return c }

func (c *logCapture) find(message string) (capturedEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.message == message {
			return e, true
		}
	}
	return capturedEntry{}, false
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		quiet := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(quiet)
	})

	Describe("Publish", func() {
		It("should hand the publisher's context to subscribers", func() {
			actors := make(chan string, 1)
			bus.Subscribe(events.EventTypeRecordCreated, func(ctx context.Context, event events.Event) error {
				actors <- internal.UserIDFromContext(ctx)
				return nil
			})

			userCtx := internal.ContextWithUserID(context.Background(), "user-9")
			err := bus.Publish(userCtx, events.NewRecordCreatedEvent(events.RecordKindExpense, "e1", "Approved", 100))
			Expect(err).NotTo(HaveOccurred())
			Eventually(actors).Should(Receive(Equal("user-9")))
		})

		It("should not propagate handler failures to the publisher", func() {
			bus.Subscribe(events.EventTypeRecordDeleted, func(ctx context.Context, event events.Event) error {
				return errors.New("handler broke")
			})

			err := bus.Publish(context.Background(), events.NewRecordDeletedEvent(events.RecordKindExpense, "e1"))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("PublishSync", func() {
		It("should dispatch in the caller's goroutine", func() {
			var seen string
			bus.Subscribe(events.EventTypeBudgetUpdated, func(ctx context.Context, event events.Event) error {
				seen = internal.UserIDFromContext(ctx)
				return nil
			})

			userCtx := internal.ContextWithUserID(context.Background(), "user-2")
			Expect(bus.PublishSync(userCtx, events.NewBudgetUpdatedEvent(500))).To(Succeed())
			Expect(seen).To(Equal("user-2"))
		})

		It("should stop at the first failing handler and return its error", func() {
			secondCalled := false
			bus.Subscribe(events.EventTypeBudgetUpdated, func(ctx context.Context, event events.Event) error {
				return errors.New("first handler broke")
			})
			bus.Subscribe(events.EventTypeBudgetUpdated, func(ctx context.Context, event events.Event) error {
				secondCalled = true
				return nil
			})

			err := bus.PublishSync(context.Background(), events.NewBudgetUpdatedEvent(500))
			Expect(err).To(HaveOccurred())
			Expect(secondCalled).To(BeFalse())
		})
	})

	Describe("RegisterAuditSubscriber", func() {
		It("should log the acting user from the publisher's context", func() {
			capture := &logCapture{}
			events.RegisterAuditSubscriber(bus, slog.New(capture))

			userCtx := internal.ContextWithUserID(context.Background(), "user-5")
			event := events.NewRecordStatusChangedEvent(events.RecordKindOvertime, "o1", "Approved")
			Expect(bus.PublishSync(userCtx, event)).To(Succeed())

			entry, ok := capture.find("audit")
			Expect(ok).To(BeTrue())
			Expect(entry.attrs["actor"]).To(Equal("user-5"))
			Expect(entry.attrs["event_type"]).To(Equal(events.EventTypeRecordStatusChanged))
			Expect(entry.attrs["event_id"]).To(Equal(event.EventID()))
		})

		It("should log an empty actor for background publishers", func() {
			capture := &logCapture{}
			events.RegisterAuditSubscriber(bus, slog.New(capture))

			Expect(bus.PublishSync(context.Background(), events.NewBudgetUpdatedEvent(1000))).To(Succeed())

			entry, ok := capture.find("audit")
			Expect(ok).To(BeTrue())
			Expect(entry.attrs["actor"]).To(Equal(""))
		})
	})
})
