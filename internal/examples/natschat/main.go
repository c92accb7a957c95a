// NATS-backed demo: an embedded NATS server carries protobuf-encoded
// messages between a publisher and a subscriber.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ryanhamamura/pubnode"
	"github.com/ryanhamamura/pubnode/natspub"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := natspub.NewEmbedded(ctx, "./data/natschat")
	if err != nil {
		log.Fatal(err)
	}

	sess, err := pubnode.Open(pubnode.Options{Transport: conn})
	if err != nil {
		log.Fatal(err)
	}
	defer sess.Close()

	done := make(chan struct{})
	_, err = pubnode.DeclareSubscriber(sess, "demo.chat", func(msg *wrapperspb.StringValue, err error) {
		if err != nil {
			log.Printf("bad payload: %v", err)
			return
		}
		fmt.Printf("received: %s\n", msg.GetValue())
		close(done)
	})
	if err != nil {
		log.Fatal(err)
	}

	pub, err := pubnode.DeclarePublisher[wrapperspb.StringValue](sess, "demo.chat")
	if err != nil {
		log.Fatal(err)
	}
	if err := pub.Send(wrapperspb.String("hello over NATS")); err != nil {
		log.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		log.Fatal("timed out waiting for message")
	}
}
