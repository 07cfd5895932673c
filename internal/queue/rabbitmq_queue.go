package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"gocloud.dev/pubsub/rabbitpubsub"
)

const exchangeKind = "fanout"

// AMQPChannel defines the AMQP channel operations required for topology setup.
type AMQPChannel interface {
	ExchangeDeclare(
		name, kind string,
		durable, autoDelete, internal, noWait bool,
		args amqp.Table,
	) error
	QueueDeclare(
		name string,
		durable, autoDelete, exclusive, noWait bool,
		args amqp.Table,
	) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// DeclareTopology declares a durable fanout exchange and a durable queue of the
// same name and binds them.
func DeclareTopology(ch AMQPChannel, name string) error {
	if ch == nil {
		return fmt.Errorf("declare topology: channel is required")
	}

	if err := ch.ExchangeDeclare(name, exchangeKind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(name, "", name, false, nil); err != nil {
		return fmt.Errorf("bind queue to exchange: %w", err)
	}

	return nil
}

// OpenRabbitMQQueue dials the broker, declares the topology for name and returns
// a queue publishing to the exchange and consuming from the queue.
func OpenRabbitMQQueue(url, name string) (*PubSubQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if err := DeclareTopology(ch, name); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	_ = ch.Close()

	topic := rabbitpubsub.OpenTopic(conn, name, nil)
	sub := rabbitpubsub.OpenSubscription(conn, name, nil)

	return NewPubSubQueue(topic, sub, conn.Close), nil
}
