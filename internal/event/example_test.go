package event_test

import (
	"errors"
	"fmt"

	"github.com/dshills/inputbus/internal/event"
)

// Example_basicUsage demonstrates registering, emitting and unregistering.
func Example_basicUsage() {
	d := event.New()

	id, _ := d.Register("resize", func(w, h int) {
		fmt.Printf("resized to %dx%d\n", w, h)
	})
	fmt.Println("registered", id)

	_ = d.Emit("resize", 800, 600)

	_ = d.Unregister(id)
	_ = d.Emit("resize", 1024, 768)
	fmt.Println("listeners:", d.Count())

	// Output:
	// registered resize_1
	// resized to 800x600
	// listeners: 0
}

// Example_signatureMismatch demonstrates that arguments must match exactly.
func Example_signatureMismatch() {
	d := event.New()
	_, _ = d.Register("score", func(points int) {
		fmt.Println("never called")
	})

	err := d.Emit("score", 1.5)
	fmt.Println(errors.Is(err, event.ErrSignatureMismatch))

	// Output:
	// true
}

// Example_declare demonstrates fixing an event's signature up front.
func Example_declare() {
	d := event.New()
	_ = d.Declare("typed", event.TypesOf("", 0))

	_, err := d.Register("typed", func(s string) {})
	fmt.Println(err)

	// Output:
	// signature mismatch for event typed: want (string, int), got (string)
}
