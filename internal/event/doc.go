// Package event provides the in-process event bus that carries observable
// output from the light and the remote to whoever renders it.
//
// Publishing is synchronous: Publish returns only after every matching
// handler has run, in subscription order. Handlers subscribe with a topic
// pattern using dot-separated segments:
//
//	bus := event.NewBus()
//	bus.SubscribeFunc("light.*", func(ctx context.Context, ev event.Event) error {
//	    fmt.Println(ev.Message)
//	    return nil
//	})
//
//	bus.Publish(ctx, event.New("light.on", "living-room", "The light is ON."))
//
// A handler error or panic is logged and recorded in Stats; delivery to the
// remaining handlers continues.
package event
