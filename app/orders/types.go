package orders

import (
	"context"
	"errors"

	"github.com/ovenandcrumb/bakehouse/app/content"
	"github.com/ovenandcrumb/bakehouse/app/email"
)

// Order workflow labels. These are advisory: the service persists any status
// string without validating transitions, so staff can override the workflow
// manually.
const (
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in-progress"
	StatusReady      = "ready-pickup"
	StatusDelivery   = "out-delivery"
	StatusDelivered  = "delivered"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ErrUnauthorized is returned when a permanent delete carries a wrong or
// missing admin password.
var ErrUnauthorized = errors.New("invalid admin password")

// Store is the order side of the content source: one read, one patch, one
// delete, plus asset upload for note attachments.
type Store interface {
	GetOrder(ctx context.Context, id string) (*content.Order, error)
	PatchOrder(ctx context.Context, id string, set map[string]interface{}) (*content.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

var _ Store = (*content.Client)(nil)

// Notifier sends transactional email.
type Notifier interface {
	Send(ctx context.Context, msg email.Message) error
}

var _ Notifier = (*email.Client)(nil)

// ImageUpload is one note attachment received from the admin UI.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UpdateRequest is a partial order update. Empty fields are left untouched.
type UpdateRequest struct {
	Status         string        `json:"status"`
	DeliveryMethod string        `json:"deliveryMethod"`
	DeliveryDate   string        `json:"deliveryDate"`
	Address        string        `json:"address"`
	NoteText       string        `json:"note"`
	NoteImages     []ImageUpload `json:"-"`
}
