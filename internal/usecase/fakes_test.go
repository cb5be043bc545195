package usecase

import (
	"context"
	"strconv"
	"sync"

	"github.com/pkg/errors"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

var errNetwork = errors.New("dial tcp: connection refused")

type fakeProductRepo struct {
	mu       sync.Mutex
	products []entity.Product
	nextID   int
	err      error
	updates  map[string]entity.ProductUpdate
	deleted  []entity.QRCode
}

func newFakeProductRepo(products ...entity.Product) *fakeProductRepo {
	return &fakeProductRepo{products: products, nextID: 100, updates: map[string]entity.ProductUpdate{}}
}

func (f *fakeProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]entity.Product{}, f.products...), nil
}

func (f *fakeProductRepo) Get(ctx context.Context, id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, input entity.ProductInput) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	p := entity.Product{
		ID:          strconv.Itoa(f.nextID),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Images:      input.Images,
		QRCode:      input.QRCode,
		Ingredients: input.Ingredients,
		Benefits:    input.Benefits,
		Usage:       input.Usage,
	}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeProductRepo) UpdateByID(ctx context.Context, id string, update entity.ProductUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.updates[id] = update
	for i := range f.products {
		if f.products[i].ID == id && update.Name != nil {
			f.products[i].Name = *update.Name
		}
	}
	return nil
}

func (f *fakeProductRepo) DeleteByQRCode(ctx context.Context, code entity.QRCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, code)
	kept := f.products[:0]
	for _, p := range f.products {
		if p.QRCode != code {
			kept = append(kept, p)
		}
	}
	f.products = kept
	return nil
}

type fakeContactRepo struct {
	mu        sync.Mutex
	messages  []entity.ContactMessage
	submitted []entity.ContactForm
	listErr   error
	submitErr error
	setErr    error
	deleteErr error
	setCalls  int
	deletes   []string
}

func (f *fakeContactRepo) Submit(ctx context.Context, form entity.ContactForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, form)
	return nil
}

func (f *fakeContactRepo) List(ctx context.Context) ([]entity.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.ContactMessage{}, f.messages...), nil
}

func (f *fakeContactRepo) SetRead(ctx context.Context, id string, read bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	return f.setErr
}

func (f *fakeContactRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, id)
	return nil
}

type fakeAdminRepo struct {
	mu          sync.Mutex
	password    string
	profile     entity.AdminProfile
	loginErr    error
	logoutReply *entity.AdminProfile
	logoutErr   error
	editErr     error
	profileErr  error
	profileAuth *bool
	calls       int
}

func boolPtr(b bool) *bool { return &b }

func (f *fakeAdminRepo) Login(ctx context.Context, password string) (*repository.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if password != f.password {
		return &repository.LoginResult{}, nil
	}
	p := f.profile
	p.Auth = boolPtr(true)
	return &repository.LoginResult{Admin: &p}, nil
}

func (f *fakeAdminRepo) Logout(ctx context.Context) (*entity.AdminProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.logoutErr != nil {
		return nil, f.logoutErr
	}
	if f.logoutReply != nil {
		return f.logoutReply, nil
	}
	return &entity.AdminProfile{Auth: boolPtr(false)}, nil
}

func (f *fakeAdminRepo) EditProfile(ctx context.Context, email, phone string) (*entity.AdminProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.editErr != nil {
		return nil, f.editErr
	}
	// the backend normalizes the email
	f.profile.Email = email + ".verified"
	f.profile.Phone = phone
	p := f.profile
	return &p, nil
}

func (f *fakeAdminRepo) Profile(ctx context.Context) (*entity.AdminProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := f.profile
	p.Auth = f.profileAuth
	return &p, nil
}

func (f *fakeAdminRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSheet struct {
	inputs  []entity.ProductInput
	err     error
	written []entity.Product
}

func (f *fakeSheet) ParseProductsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.ProductInput, error) {
	return f.inputs, f.err
}

func (f *fakeSheet) WriteProducts(ctx context.Context, products []entity.Product) ([]byte, error) {
	f.written = products
	return []byte("xlsx"), nil
}

type fakeAI struct {
	prompt string
	reply  string
	err    error
}

func (f *fakeAI) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}
