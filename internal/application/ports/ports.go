package ports

import (
	"context"
	"time"
)

// StoredFile es el resultado de una subida al almacenamiento de blobs.
type StoredFile struct {
	URL string
	Key string
}

// FileStorage es el colaborador de almacenamiento de archivos (imágenes de
// producto, documentos de proveedor). La validación de tipo/tamaño ocurre
// antes de llamar aquí; el adaptador no revalida.
type FileStorage interface {
	Upload(ctx context.Context, name, contentType string, data []byte, scope string) (*StoredFile, error)
	DeleteByURL(ctx context.Context, url string) error
	ListAll(ctx context.Context, scope string) ([]string, error)
}

// Mailer es el colaborador de correo. El envío se espera (awaited) pero las
// notificaciones no críticas pueden ignorar el error en el servicio que llama.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ExternalIdentity es el resultado de verificar un id_token OAuth.
type ExternalIdentity struct {
	ExternalID    string
	Email         string
	EmailVerified bool
	Name          string
}

// IdentityProvider es el colaborador OAuth (Google). Los errores del proveedor
// se colapsan en un fallo genérico de verificación; el core no interpreta
// códigos específicos.
type IdentityProvider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error)
	ExchangeCode(ctx context.Context, code string) (idToken string, err error)
}

// Event es el sobre que se publica al bus por cada transición de ciclo de vida.
type Event struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"` // p.ej. "order.status_changed"
	OccurredAt time.Time `json:"occurred_at"`
	EntityID   string    `json:"entity_id"`
	Payload    any       `json:"payload"`
}

// EventPublisher publica eventos de dominio. Las implementaciones son
// fire-and-forget: un fallo de publicación nunca revierte la transición.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event)
}

// DedupStore registra ids de eventos de webhook ya procesados.
// MarkIfNew devuelve true si el id no se había visto (y lo registra con TTL).
type DedupStore interface {
	MarkIfNew(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}
