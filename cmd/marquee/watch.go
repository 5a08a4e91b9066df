package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/prideworks/marquee/internal/events"
	"github.com/prideworks/marquee/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Stream mutation events from the bus",
	Long:    "Subscribes to the NATS event bus and prints every event and role mutation as it happens. Requires MARQUEE_NATS_URL.",
	GroupID: "system",
	Args:    cobra.NoArgs,
	// Skip the HTTP client — watch talks to the bus directly.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL := os.Getenv("MARQUEE_NATS_URL")
		if natsURL == "" {
			return fmt.Errorf("MARQUEE_NATS_URL is not set")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sub, err := events.NewNATSSubscriber(natsURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.Printf("nats: disconnected: %v", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				log.Printf("nats: reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe("marquee.>")
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		fmt.Println(ui.RenderMuted("watching marquee.> (ctrl-c to stop)"))
		for {
			select {
			case <-ctx.Done():
				return nil
			case payload, ok := <-ch:
				if !ok {
					return nil
				}
				fmt.Printf("%s %s\n", ui.RenderMuted(time.Now().Format("15:04:05")), payload)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
