package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ovenandcrumb/bakehouse/app/content"
	"github.com/ovenandcrumb/bakehouse/app/email"
)

// Service applies order updates against the content source and sends
// best-effort status notifications. The order mutation is the operation of
// record; notification failures are logged and swallowed.
type Service struct {
	store         Store
	notifier      Notifier
	adminPassword string
	adminEmail    string
}

func NewService(store Store, notifier Notifier, adminPassword, adminEmail string) *Service {
	return &Service{
		store:         store,
		notifier:      notifier,
		adminPassword: adminPassword,
		adminEmail:    adminEmail,
	}
}

// Get returns the order, or nil when the content source holds no such
// document.
func (s *Service) Get(ctx context.Context, id string) (*content.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// Update applies the non-empty fields of req to the order. A notification is
// attempted only when the incoming status differs from the stored status.
// Returns the updated order, or nil when the order does not exist.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*content.Order, error) {
	current, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	set := map[string]interface{}{}
	if req.Status != "" {
		set["status"] = req.Status
	}
	if req.DeliveryMethod != "" {
		set["deliveryMethod"] = req.DeliveryMethod
	}
	if req.DeliveryDate != "" {
		set["deliveryDate"] = req.DeliveryDate
	}
	if req.Address != "" {
		set["address"] = req.Address
	}

	if req.NoteText != "" || len(req.NoteImages) > 0 {
		set["notes"] = s.appendNote(ctx, current, req)
	}

	if len(set) == 0 {
		return current, nil
	}

	updated, err := s.store.PatchOrder(ctx, id, set)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if req.Status != "" && req.Status != current.Status {
		s.notifyStatusChange(ctx, updated)
	}

	return updated, nil
}

// Delete cancels an order. The default is a reversible status flip to
// cancelled; a permanent delete requires the admin password.
func (s *Service) Delete(ctx context.Context, id, password string, permanent bool) (*content.Order, error) {
	current, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if permanent {
		if s.adminPassword == "" || password != s.adminPassword {
			return nil, ErrUnauthorized
		}
		if err := s.store.DeleteOrder(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete order: %w", err)
		}
		return current, nil
	}

	updated, err := s.store.PatchOrder(ctx, id, map[string]interface{}{"status": StatusCancelled})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	if current.Status != StatusCancelled {
		s.notifyStatusChange(ctx, updated)
	}

	return updated, nil
}

// appendNote uploads any attached images and returns the order's note list
// with the new note appended. Individual upload failures are logged and the
// remaining images are still processed; a partially attached note is
// accepted.
func (s *Service) appendNote(ctx context.Context, order *content.Order, req UpdateRequest) []content.OrderNote {
	note := content.OrderNote{
		Text:      req.NoteText,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, img := range req.NoteImages {
		ref, err := s.store.UploadImage(ctx, img.Filename, img.ContentType, img.Data)
		if err != nil {
			slog.Error("Failed to upload note image", "order", order.ID, "filename", img.Filename, "error", err)
			continue
		}
		note.ImageRefs = append(note.ImageRefs, ref)
	}

	return append(order.Notes, note)
}

func (s *Service) notifyStatusChange(ctx context.Context, order *content.Order) {
	if order == nil || order.Email == "" {
		return
	}

	subject, html := email.StatusUpdate(order.OrderNumber, order.CustomerName, order.Status)

	to := []string{order.Email}
	if s.adminEmail != "" {
		to = append(to, s.adminEmail)
	}

	if err := s.notifier.Send(ctx, email.Message{To: to, Subject: subject, HTML: html}); err != nil {
		slog.Error("Failed to send status notification", "order", order.ID, "status", order.Status, "error", err)
	}
}
