package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

const (
	// ExchangeReceipts — durable-обменник событий покупок.
	ExchangeReceipts = "receipts"
	// QueuePurchase — очередь квитанций о покупках.
	QueuePurchase = "receipts.purchase"
	// RoutingKeyPurchase — ключ маршрутизации событий покупок.
	RoutingKeyPurchase = "purchase"
)

// SetupChannel открывает канал и объявляет обменник и очередь квитанций.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		ExchangeReceipts,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_, err = ch.QueueDeclare(
		QueuePurchase,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.QueueBind(QueuePurchase, RoutingKeyPurchase, ExchangeReceipts, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, nil
}
