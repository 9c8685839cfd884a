package rabbitmq

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectAttempts     = 5
	connectMaxElapsed   = 10 * time.Second
	disconnectQuiesceMs = 250
)

// RabbitMQConfig describes the MQTT listener of the broker (RabbitMQ MQTT plugin).
type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	ClientID string

	// 0 = paho default
	ConnectTimeout time.Duration
	Logger         *log.Logger
}

func (c *RabbitMQConfig) BrokerURL() string {
	return fmt.Sprintf("tcp://%s:%d", c.Host, c.Port)
}

func (c *RabbitMQConfig) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

func clientOptions(cfg *RabbitMQConfig) *mqtt.ClientOptions {
	logger := cfg.logger()

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL())
	opts.SetUsername(cfg.User)
	opts.SetPassword(cfg.Password)
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Printf("MQTT connection lost: %v", err)
	})
	return opts
}

// NewRabbitMQConn connects to the broker. Only the initial connection is retried,
// with exponential backoff; the connection is closed when ctx is done.
func NewRabbitMQConn(ctx context.Context, cfg *RabbitMQConfig) (mqtt.Client, error) {
	logger := cfg.logger()
	opts := clientOptions(cfg)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = connectMaxElapsed
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, connectAttempts-1), ctx)

	var client mqtt.Client
	connect := func() error {
		client = mqtt.NewClient(opts)
		token := client.Connect()
		token.Wait()
		return token.Error()
	}
	notify := func(err error, wait time.Duration) {
		logger.Printf("MQTT connect to %s failed: %v (retrying in %s)", cfg.BrokerURL(), err, wait)
	}
	if err := backoff.RetryNotify(connect, policy, notify); err != nil {
		return nil, fmt.Errorf("could not establish MQTT connection after retries: %w", err)
	}
	logger.Printf("Connected to MQTT broker at %s", cfg.BrokerURL())

	go func() {
		<-ctx.Done()
		CloseRabbitMQConn(client, logger)
	}()

	return client, nil
}

// CloseRabbitMQConn disconnects client if it is connected; a nil logger means log.Default().
func CloseRabbitMQConn(client mqtt.Client, logger *log.Logger) {
	if client == nil || !client.IsConnected() {
		return
	}
	if logger == nil {
		logger = log.Default()
	}
	client.Disconnect(disconnectQuiesceMs)
	logger.Println("MQTT connection successfully closed.")
}
