package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

// ContactUseCase sends visitor messages. Unlike the product store, Submit
// reports every failure to the caller.
type ContactUseCase interface {
	// Submit validates and posts the form. Backend rejections come back as
	// *backend.APIError, local rejections as *ValidationError.
	Submit(ctx context.Context, form entity.ContactForm) error

	// ContactInfo returns the public contact details of the shop, or nil
	ContactInfo(ctx context.Context) *entity.AdminProfile
}

type contactUseCase struct {
	contactRepo repository.ContactRepository
	adminRepo   repository.AdminRepository
}

// NewContactUseCase creates the contact form client.
func NewContactUseCase(contactRepo repository.ContactRepository, adminRepo repository.AdminRepository) ContactUseCase {
	return &contactUseCase{
		contactRepo: contactRepo,
		adminRepo:   adminRepo,
	}
}

func (u *contactUseCase) Submit(ctx context.Context, form entity.ContactForm) error {
	form = trimForm(form)
	if err := validateForm(form); err != nil {
		return err
	}

	if err := u.contactRepo.Submit(ctx, form); err != nil {
		zap.L().Warn("contact submission failed", zap.String("email", form.Email), zap.Error(err))
		return err
	}
	return nil
}

func (u *contactUseCase) ContactInfo(ctx context.Context) *entity.AdminProfile {
	profile, err := u.adminRepo.Profile(ctx)
	if err != nil {
		zap.L().Error("load contact info", zap.Error(err))
		return nil
	}
	// only the public fields leave this method
	return &entity.AdminProfile{Email: profile.Email, Phone: profile.Phone}
}

func trimForm(form entity.ContactForm) entity.ContactForm {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)
	return form
}

func validateForm(form entity.ContactForm) error {
	var fields []string
	if form.Name == "" {
		fields = append(fields, "name")
	}
	if form.Email == "" || !strings.Contains(form.Email, "@") {
		fields = append(fields, "email")
	}
	if form.Subject == "" {
		fields = append(fields, "subject")
	}
	if form.Message == "" {
		fields = append(fields, "message")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
