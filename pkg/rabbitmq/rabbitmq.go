package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/op/go-logging"
	amqp "github.com/streadway/amqp"
)

var log = logging.MustGetLogger("rabbitmq")

// PaymentQueue receives one message per finalized payment.
const PaymentQueue = "payment_queue"

// ErrMalformedEvent marks a message no retry can fix. Handlers wrap it so the
// consumer drops the message instead of requeueing it.
var ErrMalformedEvent = errors.New("malformed payment event")

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares PaymentQueue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declarePaymentQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Infof("RabbitMQ client connected and %s declared", PaymentQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declarePaymentQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		PaymentQueue, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", PaymentQueue, err)
	}
	return q, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishPaymentCompleted publishes a persistent JSON event to PaymentQueue.
func (c *Client) PublishPaymentCompleted(event PaymentEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal payment event to JSON: %w", err)
	}

	err = c.channel.Publish(
		"",           // default exchange
		PaymentQueue, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         "payment.completed",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Debugf("Sent payment event: %s", body)
	return nil
}

// ConsumePaymentEvents delivers PaymentQueue messages to handler on a new
// goroutine. See settle for how each message is acknowledged.
func (c *Client) ConsumePaymentEvents(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declarePaymentQueue(c.channel)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			settle(msg, handler(msg))
		}
		log.Warning("Payment event consumer stopped")
	}()

	return nil
}

// settle acks a handled message. A failed message is requeued once; it is
// dropped when it fails again or when the failure wraps ErrMalformedEvent.
func settle(msg amqp.Delivery, handlerErr error) {
	if handlerErr == nil {
		if err := msg.Ack(false); err != nil {
			log.Errorf("Error acking message %d: %v", msg.DeliveryTag, err)
		}
		return
	}

	requeue := !msg.Redelivered && !errors.Is(handlerErr, ErrMalformedEvent)
	if requeue {
		log.Warningf("Error processing message %d, requeueing: %v", msg.DeliveryTag, handlerErr)
	} else {
		log.Errorf("Dropping message %d: %v", msg.DeliveryTag, handlerErr)
	}
	if err := msg.Nack(false, requeue); err != nil {
		log.Errorf("Error nacking message %d: %v", msg.DeliveryTag, err)
	}
}

// PaymentEvent is the decoded body of a payment.completed message.
type PaymentEvent struct {
	PaymentID   string   `json:"paymentId"`
	Email       string   `json:"email"`
	Price       float64  `json:"price"`
	CartCleared int64    `json:"cartCleared"`
	MenuItemIDs []string `json:"menuItemIds"`
}

// LogPaymentEvent is the default consumer: it decodes and logs each event.
func LogPaymentEvent(msg amqp.Delivery) error {
	var ev PaymentEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	log.Infof("Payment %s completed for %s: %.2f (%d cart entries cleared)", ev.PaymentID, ev.Email, ev.Price, ev.CartCleared)
	return nil
}
