// Minimal in-process demo: one publisher and one subscriber on the same
// topic over the in-memory transport, JSON-encoded messages.
package main

import (
	"fmt"
	"log"

	"github.com/ryanhamamura/pubnode"
)

type chatMsg struct {
	Text string `json:"text"`
}

func main() {
	sess, err := pubnode.Open(pubnode.Options{
		Transport: pubnode.NewMemTransport(),
		Codec:     pubnode.JSON(),
		LogLevel:  pubnode.LogLevelDebug,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer sess.Close()

	_, err = pubnode.DeclareSubscriber(sess, "demo/chat", func(msg *chatMsg, err error) {
		if err != nil {
			log.Printf("bad payload: %v", err)
			return
		}
		fmt.Printf("received: %s\n", msg.Text)
	})
	if err != nil {
		log.Fatal(err)
	}

	pub, err := pubnode.DeclarePublisher[chatMsg](sess, "demo/chat")
	if err != nil {
		log.Fatal(err)
	}
	if err := pub.Send(&chatMsg{Text: "hello"}); err != nil {
		log.Fatal(err)
	}
}
