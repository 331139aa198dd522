package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/tu-usuario/marketplace-api/internal/application/ports"
	"github.com/tu-usuario/marketplace-api/pkg/logger"
)

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher publica eventos de ciclo de vida de forma asíncrona: los
// eventos entran a un canal interno y una goroutine los escribe al broker.
// Un fallo de publicación se loguea y nunca afecta la transición que lo originó.
type KafkaPublisher struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	log     *logger.Logger
}

// NewKafkaPublisher crea el publicador con buffer interno.
func NewKafkaPublisher(brokers []string, topic string, buf int, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
		log:     log,
	}
}

// Start lanza la goroutine de escritura. Al cancelar ctx drena el buffer
// pendiente antes de cerrar el writer.
func (p *KafkaPublisher) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				close(p.inbox)
				for m := range p.inbox {
					p.write(m)
				}
				_ = p.w.Close()
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					return
				}
				p.write(m)
			}
		}
	}()
}

// Publish encola el evento. Si el buffer está lleno el evento se descarta con
// un warning: el bus es informativo, no fuente de verdad.
func (p *KafkaPublisher) Publish(_ context.Context, ev ports.Event) {
	value, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Str("event_type", ev.EventType).Msg("serializar evento")
		return
	}
	m := kafka.Message{
		Key:   []byte(ev.EntityID),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.EventType)},
			{Key: "event_id", Value: []byte(ev.EventID)},
		},
	}
	select {
	case p.inbox <- m:
	default:
		p.log.Warn().Str("event_type", ev.EventType).Str("event_id", ev.EventID).Msg("buffer de eventos lleno, evento descartado")
	}
}

func (p *KafkaPublisher) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		p.log.Error().Err(err).Msg("publicar evento en kafka")
	}
}

// WaitClosed bloquea hasta que la goroutine de escritura termina (shutdown).
func (p *KafkaPublisher) WaitClosed() { <-p.closeCh }

var _ ports.EventPublisher = (*NoopPublisher)(nil)

// NoopPublisher se usa cuando KAFKA_BROKERS no está configurado.
type NoopPublisher struct{}

// Publish descarta el evento.
func (NoopPublisher) Publish(context.Context, ports.Event) {}
