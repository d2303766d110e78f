package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"support-desk-api/config/logger"
)

type Publisher interface {
	Publish(ctx context.Context, key string, msg Envelope) error
	Close() error
}

var (
	ErrNotConfirmed = errors.New("broker did not confirm the message")
	ErrNotConnected = errors.New("broker connection is down")
)

const (
	maxDialDelay          = 60 * time.Second
	defaultPublishTimeout = 5 * time.Second
)

type ConnectionOptions struct {
	URL            string
	Exchange       string
	RetryAttempts  int
	Delay          time.Duration
	PublishTimeout time.Duration
	Log            *logger.AppLogger
}

type rabbitPublisher struct {
	mu   sync.RWMutex
	conn *amqp091.Connection
	opts ConnectionOptions

	done      chan struct{}
	closeOnce sync.Once
}

// NewRabbitPublisher dials the broker, retrying with exponential backoff, and
// declares a durable topic exchange. A lost connection is redialed in the
// background; publishes fail fast with ErrNotConnected meanwhile.
func NewRabbitPublisher(ctx context.Context, opts ConnectionOptions) (Publisher, error) {
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = defaultPublishTimeout
	}
	conn, err := connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	r := &rabbitPublisher{conn: conn, opts: opts, done: make(chan struct{})}
	go r.watch(conn)
	return r, nil
}

func connect(ctx context.Context, opts ConnectionOptions) (*amqp091.Connection, error) {
	conn, err := dialWithRetry(ctx, opts)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := ch.ExchangeDeclare(opts.Exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// watch redials after the broker closes conn, until the publisher is closed.
func (r *rabbitPublisher) watch(conn *amqp091.Connection) {
	for {
		closed := conn.NotifyClose(make(chan *amqp091.Error, 1))
		select {
		case <-r.done:
			return
		case amqpErr := <-closed:
			if amqpErr != nil {
				r.opts.Log.Event.Warning.Warn().Str("reason", amqpErr.Reason).Int("code", amqpErr.Code).Msg("rabbit connection lost")
			}
		}

		next, ok := r.reconnect()
		if !ok {
			return
		}
		conn = next
	}
}

func (r *rabbitPublisher) reconnect() (*amqp091.Connection, bool) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-r.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		conn, err := connect(ctx, r.opts)
		if err == nil {
			r.mu.Lock()
			defer r.mu.Unlock()
			select {
			case <-r.done:
				conn.Close()
				return nil, false
			default:
			}
			r.conn = conn
			r.opts.Log.Event.Info.Info().Msg("rabbit reconnected")
			return conn, true
		}

		r.opts.Log.Event.Error.Error().Err(err).Msg("rabbit reconnect failed")
		select {
		case <-ctx.Done():
			return nil, false
		case <-time.After(max(r.opts.Delay, time.Second)):
		}
	}
}

func dialWithRetry(ctx context.Context, opts ConnectionOptions) (*amqp091.Connection, error) {
	attempts := max(opts.RetryAttempts, 1)
	var lastErr error

	for i := 1; i <= attempts; i++ {
		conn, err := amqp091.Dial(opts.URL)
		if err == nil {
			if i > 1 {
				opts.Log.Event.Info.Info().Int("attempt", i).Msg("rabbit connected")
			}
			return conn, nil
		}
		lastErr = err

		sleep := opts.Delay * time.Duration(math.Pow(2, float64(i-1)))
		if sleep > maxDialDelay {
			sleep = maxDialDelay
		}
		opts.Log.Event.Warning.Warn().Err(err).Int("attempt", i).Dur("sleep", sleep).Msg("rabbit dial failed")

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("dial cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, lastErr)
}

func (r *rabbitPublisher) Publish(ctx context.Context, key string, msg Envelope) error {
	r.mu.RLock()
	conn := r.conn
	r.mu.RUnlock()
	if conn == nil || conn.IsClosed() {
		return ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.PublishTimeout)
	defer cancel()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	if err := ch.Confirm(false); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	msgID := msg.Meta.ID
	if msgID == "" {
		msgID = uuid.NewString()
	}

	confirmation, err := ch.PublishWithDeferredConfirmWithContext(
		ctx, r.opts.Exchange, key, false, false,
		amqp091.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp091.Persistent,
			MessageId:     msgID,
			CorrelationId: msg.Meta.CorrelationID,
			Type:          msg.Meta.Type,
			Timestamp:     time.Now(),
			Body:          body,
		},
	)
	if err != nil {
		return err
	}
	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return ErrNotConfirmed
	}
	r.opts.Log.Event.Info.Info().Str("key", key).Str("exchange", r.opts.Exchange).Msg("published")
	return nil
}

func (r *rabbitPublisher) Close() error {
	r.closeOnce.Do(func() { close(r.done) })

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn == nil || r.conn.IsClosed() {
		return nil
	}
	return r.conn.Close()
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Envelope) error { return nil }

func (NopPublisher) Close() error { return nil }
