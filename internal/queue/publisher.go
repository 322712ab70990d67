package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dumeirei/hotel-backoffice/internal/common/config"
	"github.com/dumeirei/hotel-backoffice/internal/common/logger"
)

// Publisher 事件发布接口
type Publisher interface {
	Publish(ctx context.Context, event *ReservationEvent) error
	Close() error
}

// NopPublisher 不投递任何事件，消息队列未启用时使用
type NopPublisher struct{}

// Publish 实现 Publisher
func (NopPublisher) Publish(context.Context, *ReservationEvent) error { return nil }

// Close 实现 Publisher
func (NopPublisher) Close() error { return nil }

// amqpChannel 发布所需的通道能力
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// dialFunc 建立连接并返回已声明交换机的通道
type dialFunc func() (amqpChannel, func() error, error)

// AMQPPublisher 基于 RabbitMQ topic 交换机的事件发布器
// 连接断开后在下一次发布时重连
type AMQPPublisher struct {
	exchange string
	timeout  time.Duration
	dial     dialFunc

	mu        sync.Mutex
	channel   amqpChannel
	closeConn func() error
}

// NewAMQPPublisher 创建发布器并立即建立连接
func NewAMQPPublisher(cfg *config.MessagingConfig) (*AMQPPublisher, error) {
	p := newAMQPPublisher(cfg.Exchange, cfg.PublishTimeoutDuration(), func() (amqpChannel, func() error, error) {
		return dialExchange(cfg.URL, cfg.Exchange)
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func newAMQPPublisher(exchange string, timeout time.Duration, dial dialFunc) *AMQPPublisher {
	if exchange == "" {
		exchange = "reservation.events"
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &AMQPPublisher{exchange: exchange, timeout: timeout, dial: dial}
}

// dialExchange 连接 broker 并声明持久化 topic 交换机
func dialExchange(url, exchange string) (amqpChannel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("连接 RabbitMQ 失败: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("打开通道失败: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("声明交换机失败: %w", err)
	}
	return ch, conn.Close, nil
}

func (p *AMQPPublisher) connectLocked() error {
	ch, closeConn, err := p.dial()
	if err != nil {
		return err
	}
	p.channel = ch
	p.closeConn = closeConn
	return nil
}

func (p *AMQPPublisher) resetLocked() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.closeConn != nil {
		_ = p.closeConn()
		p.closeConn = nil
	}
}

// Publish 以持久化 JSON 消息发布事件，路由键为事件类型
func (p *AMQPPublisher) Publish(ctx context.Context, event *ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		if err := p.connectLocked(); err != nil {
			return err
		}
	}

	if err := p.channel.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		// 通道出错后不可复用，下次发布时重连
		logger.Warn("发布预订事件失败", logger.String("type", string(event.Type)), logger.Err(err))
		p.resetLocked()
		return err
	}
	return nil
}

// Close 关闭通道与连接
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	return nil
}
