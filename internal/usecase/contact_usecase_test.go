package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/infrastructure/backend"
)

func validForm() entity.ContactForm {
	return entity.ContactForm{
		Name:    " Awa ",
		Email:   "awa@example.com",
		Subject: "Livraison",
		Message: "Quand arrive ma commande ?",
	}
}

func TestContactSubmit(t *testing.T) {
	contacts := &fakeContactRepo{}
	u := NewContactUseCase(contacts, &fakeAdminRepo{})

	require.NoError(t, u.Submit(context.Background(), validForm()))
	require.Len(t, contacts.submitted, 1)
	assert.Equal(t, "Awa", contacts.submitted[0].Name)
}

func TestContactSubmitSurfacesBackendError(t *testing.T) {
	contacts := &fakeContactRepo{submitErr: &backend.APIError{
		StatusCode: http.StatusInternalServerError,
		Status:     "Internal Server Error",
		Body:       `{"message":"db down"}`,
	}}
	u := NewContactUseCase(contacts, &fakeAdminRepo{})

	err := u.Submit(context.Background(), validForm())
	var apiErr *backend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "db down")
}

func TestContactSubmitValidatesLocally(t *testing.T) {
	contacts := &fakeContactRepo{}
	u := NewContactUseCase(contacts, &fakeAdminRepo{})

	err := u.Submit(context.Background(), entity.ContactForm{Name: "Awa", Email: "pas-un-email"})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"email", "subject", "message"}, vErr.Fields)
	assert.Empty(t, contacts.submitted)
}

func TestContactInfo(t *testing.T) {
	admin := &fakeAdminRepo{profile: entity.AdminProfile{Email: "contact@biosmaris.com", Phone: "0522"}, profileAuth: boolPtr(true)}
	u := NewContactUseCase(&fakeContactRepo{}, admin)

	info := u.ContactInfo(context.Background())
	require.NotNil(t, info)
	assert.Equal(t, "contact@biosmaris.com", info.Email)
	assert.Nil(t, info.Auth)

	admin.profileErr = errNetwork
	assert.Nil(t, u.ContactInfo(context.Background()))
}
