package notifier

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
)

// Notifier delivers formatted text to a user-facing sink.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// WriterNotifier writes each message as one block to W.
type WriterNotifier struct {
	W  io.Writer
	mu sync.Mutex
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{W: w}
}

func (n *WriterNotifier) Send(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintln(n.W, text)
	return err
}

// Multi fans a message out to every sink. A failing sink is logged and
// does not stop delivery to the others; the first error is returned.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, text string) error {
	var first error
	for _, n := range m {
		if err := n.Send(ctx, text); err != nil {
			log.Printf("[ERROR] send notification: %v", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}
