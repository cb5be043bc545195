package backend

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

type contactRepository struct {
	client *Client
}

// NewContactRepository returns the HTTP contact-message store.
func NewContactRepository(client *Client) repository.ContactRepository {
	return &contactRepository{client: client}
}

// Submit POST /api/contact/addMessage
func (r *contactRepository) Submit(ctx context.Context, form entity.ContactForm) error {
	return r.client.do(ctx, http.MethodPost, "contact/addMessage", form, nil)
}

// List GET /api/contact/list
func (r *contactRepository) List(ctx context.Context) ([]entity.ContactMessage, error) {
	var messages []entity.ContactMessage
	if err := r.client.do(ctx, http.MethodGet, "contact/list", nil, &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []entity.ContactMessage{}
	}
	return messages, nil
}

// SetRead PUT /api/contact/updatemessage with {id, read}
func (r *contactRepository) SetRead(ctx context.Context, id string, read bool) error {
	if id == "" {
		return errors.New("message id is empty")
	}
	body := struct {
		ID   string `json:"id"`
		Read bool   `json:"read"`
	}{ID: id, Read: read}
	return r.client.do(ctx, http.MethodPut, "contact/updatemessage", body, nil)
}

// Delete DELETE /api/contact/deletemessage with {id}
func (r *contactRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("message id is empty")
	}
	body := struct {
		ID string `json:"id"`
	}{ID: id}
	return r.client.do(ctx, http.MethodDelete, "contact/deletemessage", body, nil)
}
