package backend

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

type adminEnvelope struct {
	Admin   *entity.AdminProfile `json:"admin"`
	Message string               `json:"message"`
}

type adminRepository struct {
	client *Client
}

// NewAdminRepository returns the HTTP admin endpoints.
func NewAdminRepository(client *Client) repository.AdminRepository {
	return &adminRepository{client: client}
}

// Login POST /api/admin/login. A 4xx with a JSON body is a rejected password,
// not a transport failure.
func (r *adminRepository) Login(ctx context.Context, password string) (*repository.LoginResult, error) {
	body := struct {
		Password string `json:"password"`
	}{Password: password}

	var env adminEnvelope
	err := r.client.do(ctx, http.MethodPost, "admin/login", body, &env)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			_ = json.Unmarshal([]byte(apiErr.Body), &env)
			return &repository.LoginResult{Admin: env.Admin, Message: env.Message}, nil
		}
		return nil, err
	}
	return &repository.LoginResult{Admin: env.Admin, Message: env.Message}, nil
}

// Logout GET /api/admin/logout
func (r *adminRepository) Logout(ctx context.Context) (*entity.AdminProfile, error) {
	var env adminEnvelope
	if err := r.client.do(ctx, http.MethodGet, "admin/logout", nil, &env); err != nil {
		return nil, err
	}
	if env.Admin == nil {
		return nil, errors.New("logout response has no admin record")
	}
	return env.Admin, nil
}

// EditProfile PUT /api/admin/editAdmin with {email, number}
func (r *adminRepository) EditProfile(ctx context.Context, email, phone string) (*entity.AdminProfile, error) {
	body := struct {
		Email  string `json:"email"`
		Number string `json:"number"`
	}{Email: email, Number: phone}

	var env adminEnvelope
	if err := r.client.do(ctx, http.MethodPut, "admin/editAdmin", body, &env); err != nil {
		return nil, err
	}
	if env.Admin == nil {
		return nil, errors.New("edit response has no admin record")
	}
	return env.Admin, nil
}

// Profile GET /api/admin/getadminData
func (r *adminRepository) Profile(ctx context.Context) (*entity.AdminProfile, error) {
	var env adminEnvelope
	if err := r.client.do(ctx, http.MethodGet, "admin/getadminData", nil, &env); err != nil {
		return nil, err
	}
	if env.Admin == nil {
		return nil, errors.New("admin data response has no admin record")
	}
	return env.Admin, nil
}
