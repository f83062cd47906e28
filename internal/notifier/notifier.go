package notifier

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/adapter"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/store"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
	"github.com/feral-file/ff-ip-registry/internal/webhook"
)

// subjectFilter matches every registry event subject
const subjectFilter = "registry.>"

// defaultAckWait mirrors the JetStream server default
const defaultAckWait = 30 * time.Second

// Config holds the configuration for the event notifier
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int

	// WorkerPoolSize bounds the number of events delivered concurrently
	WorkerPoolSize int
	// DeliveryTimeout bounds a single HTTP attempt
	DeliveryTimeout time.Duration
	// InitialInterval and MaxInterval shape the backoff between attempts
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Notifier defines the interface for the webhook event notifier
type Notifier interface {
	// Run consumes registry events until ctx is cancelled
	Run(ctx context.Context) error
	// Notify delivers a single event to every subscribed webhook client
	Notify(ctx context.Context, event *domain.RegistryEvent) error
	// Close closes the notifier and cleans up resources
	Close()
}

type notifier struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	store      store.Store
	httpClient adapter.HTTPClient
	clock      adapter.Clock
	json       adapter.JSON
	config     Config
}

// NewNotifier creates a new event notifier
func NewNotifier(
	cfg Config,
	natsJS adapter.NatsJetStream,
	st store.Store,
	httpClient adapter.HTTPClient,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
) (Notifier, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = 1
	}
	if cfg.AckWaitTimeout <= 0 {
		cfg.AckWaitTimeout = defaultAckWait
	}

	return &notifier{
		nc:         nc,
		js:         js,
		store:      st,
		httpClient: httpClient,
		clock:      clock,
		json:       jsonAdapter,
		config:     cfg,
	}, nil
}

// Run starts the event notifier
func (n *notifier) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting event notifier", zap.String("stream", n.config.StreamName), zap.String("consumer", n.config.ConsumerName))

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       n.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       n.config.AckWaitTimeout,
		MaxDeliver:    n.config.MaxDeliver,
		FilterSubject: subjectFilter,
	}

	consumer, err := n.js.CreateOrUpdateConsumer(ctx, n.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	pool := pond.NewPool(n.config.WorkerPoolSize, pond.WithContext(ctx))
	defer pool.StopAndWait()

	sub, err := consumer.Consume(func(msg adapter.Message) {
		pool.Submit(func() {
			n.handleMessage(ctx, msg)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.InfoCtx(ctx, "Started consuming messages")

	<-ctx.Done()
	logger.InfoCtx(ctx, "Shutting down event notifier")
	return ctx.Err()
}

// handleMessage processes a single NATS message
func (n *notifier) handleMessage(ctx context.Context, msg adapter.Message) {
	var deliveryCount uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		deliveryCount = metadata.NumDelivered
	}

	var event domain.RegistryEvent
	if err := n.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to unmarshal event"))
		// Terminate message for unparseable data
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	if !domain.IsValidEventType(event.EventType) {
		logger.WarnCtx(ctx, "Dropping event with unknown type", zap.String("eventType", string(event.EventType)))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	logger.InfoCtx(ctx, "Received event",
		zap.String("eventID", event.EventID),
		zap.String("eventType", string(event.EventType)),
		zap.String("tokenID", event.TokenID.String()),
		zap.Uint64("deliveryCount", deliveryCount),
	)

	// Retries can outlast AckWait; keep the message ours until it is settled
	stop := n.keepAlive(ctx, msg)
	err := n.Notify(ctx, &event)
	stop()

	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to notify webhook clients"))
		// NAK to retry
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	// ACK message after successful processing
	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to ACK message"))
	}
}

// keepAlive signals progress on msg every half AckWait until the returned func is called.
// The returned func blocks until the heartbeat has stopped.
func (n *notifier) keepAlive(ctx context.Context, msg adapter.Message) func() {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(n.config.AckWaitTimeout / 2)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := msg.InProgress(); err != nil {
					logger.WarnCtx(ctx, "Failed to extend ack deadline", zap.Error(err))
				}
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}

// Notify delivers the event to every active client subscribed to its type.
// Clients that already acknowledged the event are skipped, so a redelivered
// message only reaches the clients still owed it. Endpoint failures are recorded
// per delivery and do not fail the event; lookup and bookkeeping failures are
// collected and returned so the message is redelivered.
func (n *notifier) Notify(ctx context.Context, event *domain.RegistryEvent) error {
	clients, err := n.store.GetActiveWebhookClientsByEventType(ctx, string(event.EventType))
	if err != nil {
		return fmt.Errorf("failed to get webhook clients: %w", err)
	}

	if len(clients) == 0 {
		logger.DebugCtx(ctx, "No webhook clients for event", zap.String("eventType", string(event.EventType)))
		return nil
	}

	whEvent := webhook.NewWebhookEvent(event)
	var errs []error
	for _, client := range clients {
		delivered, err := n.store.HasSuccessfulWebhookDelivery(ctx, client.ClientID, whEvent.EventID)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to check delivery for client %s: %w", client.ClientID, err))
			continue
		}
		if delivered {
			logger.DebugCtx(ctx, "Skipping client that already received event",
				zap.String("clientID", client.ClientID),
				zap.String("eventID", whEvent.EventID))
			continue
		}

		result, err := n.deliver(ctx, client, whEvent)
		if err != nil {
			errs = append(errs, fmt.Errorf("client %s: %w", client.ClientID, err))
			continue
		}

		if result.Success {
			logger.InfoCtx(ctx, "Webhook delivered successfully",
				zap.String("clientID", client.ClientID),
				zap.String("eventID", whEvent.EventID),
				zap.Int("statusCode", result.StatusCode))
		} else {
			logger.WarnCtx(ctx, "Webhook delivery failed",
				zap.String("clientID", client.ClientID),
				zap.String("eventID", whEvent.EventID),
				zap.Int("statusCode", result.StatusCode),
				zap.String("error", result.Error))
		}
	}

	return errors.Join(errs...)
}

// deliver records a delivery and posts the signed event with exponential backoff.
// The returned error is reserved for failures to record the delivery.
func (n *notifier) deliver(ctx context.Context, client *schema.WebhookClient, event webhook.WebhookEvent) (webhook.DeliveryResult, error) {
	eventJSON, err := n.json.Marshal(event)
	if err != nil {
		return webhook.DeliveryResult{}, fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	delivery := &schema.WebhookDelivery{
		ClientID:       client.ClientID,
		EventID:        event.EventID,
		EventType:      event.EventType,
		Payload:        eventJSON,
		DeliveryStatus: schema.WebhookDeliveryStatusPending,
	}
	if err := n.store.CreateWebhookDelivery(ctx, delivery); err != nil {
		return webhook.DeliveryResult{}, fmt.Errorf("failed to create webhook delivery record: %w", err)
	}

	var result webhook.DeliveryResult
	attempts := 0

	operation := func() error {
		attempts++
		result = n.attempt(ctx, client, event)

		status := schema.WebhookDeliveryStatusFailed
		if result.Success {
			status = schema.WebhookDeliveryStatusSuccess
		}
		var responseStatus *int
		if result.StatusCode != 0 {
			code := result.StatusCode
			responseStatus = &code
		}
		if err := n.store.UpdateWebhookDeliveryStatus(ctx, delivery.ID, status, attempts, responseStatus, result.Body, result.Error); err != nil {
			logger.ErrorCtx(ctx, errors.New("failed to update webhook delivery status"),
				zap.Error(err),
				zap.String("clientID", client.ClientID))
		}

		if result.Success {
			return nil
		}
		// Client errors other than throttling will not succeed on retry
		if result.StatusCode >= 400 && result.StatusCode < 500 && result.StatusCode != 429 {
			return backoff.Permanent(errors.New(result.Error))
		}
		return errors.New(result.Error)
	}

	maxRetries := uint64(0)
	if client.RetryMaxAttempts > 1 {
		maxRetries = uint64(client.RetryMaxAttempts - 1) //nolint:gosec,G115
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = n.config.InitialInterval
	b.MaxInterval = n.config.MaxInterval
	b.MaxElapsedTime = 0 // bounded by the client's attempt budget instead
	b.Multiplier = 2.0

	_ = backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, maxRetries), ctx))

	return result, nil
}

// attempt performs one signed HTTP delivery
func (n *notifier) attempt(ctx context.Context, client *schema.WebhookClient, event webhook.WebhookEvent) webhook.DeliveryResult {
	payload, signature, timestamp, err := webhook.GenerateSignedPayload(client.WebhookSecret, event, n.clock.Now())
	if err != nil {
		return webhook.DeliveryResult{Error: err.Error()}
	}

	headers := map[string]string{
		"Content-Type":          "application/json",
		"User-Agent":            webhook.UserAgent,
		webhook.HeaderSignature: signature,
		webhook.HeaderEventID:   event.EventID,
		webhook.HeaderEventType: event.EventType,
		webhook.HeaderTimestamp: strconv.FormatInt(timestamp, 10),
	}

	attemptCtx := ctx
	if n.config.DeliveryTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, n.config.DeliveryTimeout)
		defer cancel()
	}

	resp, err := n.httpClient.Post(attemptCtx, client.WebhookURL, headers, payload)
	result := webhook.DeliveryResult{}
	if resp != nil {
		result.StatusCode = resp.StatusCode
		result.Body = string(resp.Body)
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if !resp.OK() {
		result.Error = fmt.Sprintf("webhook endpoint returned status %d", resp.StatusCode)
		return result
	}

	result.Success = true
	return result
}

// Close closes the notifier and cleans up resources
func (n *notifier) Close() {
	if n.nc == nil {
		return
	}

	n.nc.Close()
}
