package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/config"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/infrastructure/messaging"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/kafka"
)

func tailEventsCmd() *cli.Command {
	return &cli.Command{
		Name:  "tail-events",
		Usage: "Prints prediction events from Kafka until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "topic", Usage: "Topic (defaults to KAFKA_TOPIC)"},
			&cli.StringFlag{Name: "group", Usage: "Consumer group; empty reads from the beginning without committing"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			topic := cfg.Kafka.Topic
			if v := cmd.String("topic"); v != "" {
				topic = v
			}

			client := cfg.KafkaClient()
			client.ClientID = "loanriskctl"
			client.ConsumerGroup = cmd.String("group")

			out := cmd.Root().Writer
			consumer, err := kafka.NewConsumer(client, topic, func(_ context.Context, msg kafka.Message) error {
				_, err := fmt.Fprintf(out, "%s\t%s\t%s\n", msg.Headers[messaging.HeaderEventType], msg.Key, msg.Value)
				return err
			}, newLogger(cmd))
			if err != nil {
				return err
			}
			defer consumer.Close()

			return consumer.Start(ctx)
		},
	}
}
