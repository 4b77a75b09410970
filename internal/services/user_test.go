package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/errs"
	"github.com/GregMSThompson/cost-tracker/internal/models"
	"github.com/GregMSThompson/cost-tracker/pkg/helpers"
)

type stubUserStore struct {
	users           map[string]*models.User
	createUserCalls int
	updateUserCalls int
	created         *models.User
	updated         *models.User
	err             error
}

func newStubUserStore(users ...*models.User) *stubUserStore {
	s := &stubUserStore{users: map[string]*models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.createUserCalls++
	s.created = user
	if s.err != nil {
		return s.err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return errs.NewAlreadyExistsError("user with this email already exists")
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *stubUserStore) UpdateUser(_ context.Context, user *models.User) error {
	s.updateUserCalls++
	s.updated = user
	return s.err
}

func (s *stubUserStore) GetUser(_ context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errs.NewNotFoundError("user not found")
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.NewNotFoundError("user not found")
}

// plainHasher prefixes passwords so tests can read the stored hash.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Compare(h, p string) bool      { return h == "hashed:"+p }

type stubTokens struct {
	lastUID   string
	lastEmail string
	err       error
}

func (s *stubTokens) Issue(uid, email string) (string, error) {
	s.lastUID = uid
	s.lastEmail = email
	return "token-" + uid, s.err
}

func existingUser() *models.User {
	return &models.User{ID: "u1", Name: "Jane", Email: "jane@example.com", PasswordHash: "hashed:secret1"}
}

func TestUserServiceRegister(t *testing.T) {
	store := newStubUserStore()
	tokens := &stubTokens{}
	svc := NewUserService(store, plainHasher{}, tokens)
	now := time.Now()

	got, err := svc.Register(helpers.TestCtx(), dto.RegisterRequest{Name: " Jane ", Email: "Jane@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if store.createUserCalls != 1 {
		t.Fatalf("CreateUser called %d times, want 1", store.createUserCalls)
	}
	u := store.created
	if u.ID == "" || u.Name != "Jane" || u.Email != "jane@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash != "hashed:secret1" {
		t.Fatalf("password was not hashed: %q", u.PasswordHash)
	}
	if u.CreatedAt.Before(now) {
		t.Fatalf("CreatedAt set earlier than call time: %v before %v", u.CreatedAt, now)
	}
	if got.Token != "token-"+u.ID || tokens.lastEmail != "jane@example.com" {
		t.Fatalf("unexpected token: %q", got.Token)
	}
}

func TestUserServiceRegisterValidation(t *testing.T) {
	cases := map[string]dto.RegisterRequest{
		"missing name":   {Email: "a@b.c", Password: "secret1"},
		"missing email":  {Name: "A", Password: "secret1"},
		"short password": {Name: "A", Email: "a@b.c", Password: "12345"},
		"long password":  {Name: "A", Email: "a@b.c", Password: strings.Repeat("x", 73)},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			store := newStubUserStore()
			svc := NewUserService(store, plainHasher{}, &stubTokens{})

			_, err := svc.Register(helpers.TestCtx(), req)
			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if store.createUserCalls != 0 {
				t.Fatal("store should not be called")
			}
		})
	}
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(newStubUserStore(existingUser()), plainHasher{}, &stubTokens{})

	_, err := svc.Register(helpers.TestCtx(), dto.RegisterRequest{Name: "J", Email: "jane@example.com", Password: "secret1"})
	var exists *errs.AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected AlreadyExistsError, got %v", err)
	}
}

func TestUserServiceLogin(t *testing.T) {
	svc := NewUserService(newStubUserStore(existingUser()), plainHasher{}, &stubTokens{})

	got, err := svc.Login(helpers.TestCtx(), dto.LoginRequest{Email: "JANE@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if got.User.ID != "u1" || got.Token != "token-u1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestUserServiceLoginRejectsBadCredentials(t *testing.T) {
	svc := NewUserService(newStubUserStore(existingUser()), plainHasher{}, &stubTokens{})

	for _, req := range []dto.LoginRequest{
		{Email: "jane@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "secret1"},
	} {
		_, err := svc.Login(helpers.TestCtx(), req)
		var unauth *errs.UnauthorizedError
		if !errors.As(err, &unauth) {
			t.Fatalf("expected UnauthorizedError for %+v, got %v", req, err)
		}
		if unauth.Message != invalidCredentials {
			t.Fatalf("message leaks detail: %q", unauth.Message)
		}
	}
}

func TestUserServiceMe(t *testing.T) {
	svc := NewUserService(newStubUserStore(existingUser()), plainHasher{}, &stubTokens{})

	u, err := svc.Me(helpers.TestCtx(), "u1")
	if err != nil || u.Email != "jane@example.com" {
		t.Fatalf("unexpected Me result: %+v, %v", u, err)
	}

	_, err = svc.Me(helpers.TestCtx(), "missing")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUserServiceUpdateProfile(t *testing.T) {
	store := newStubUserStore(existingUser())
	svc := NewUserService(store, plainHasher{}, &stubTokens{})

	u, err := svc.UpdateProfile(helpers.TestCtx(), "u1", dto.UpdateProfileRequest{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		CurrentPassword: "secret1",
		NewPassword:     "secret2",
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if u.Name != "Jane Doe" || u.PasswordHash != "hashed:secret2" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if store.updateUserCalls != 1 || store.updated.UpdatedAt.IsZero() {
		t.Fatalf("store not updated: %+v", store.updated)
	}
}

func TestUserServiceUpdateProfileErrors(t *testing.T) {
	cases := map[string]dto.UpdateProfileRequest{
		"no changes":         {Name: "Jane", Email: "jane@example.com"},
		"missing current":    {Name: "Jane", Email: "jane@example.com", NewPassword: "secret2"},
		"wrong current":      {Name: "Jane", Email: "jane@example.com", CurrentPassword: "nope", NewPassword: "secret2"},
		"short new password": {Name: "Jane", Email: "jane@example.com", CurrentPassword: "secret1", NewPassword: "abc"},
		"long new password":  {Name: "Jane", Email: "jane@example.com", CurrentPassword: "secret1", NewPassword: strings.Repeat("x", 73)},
		"missing email":      {Name: "Jane"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			store := newStubUserStore(existingUser())
			svc := NewUserService(store, plainHasher{}, &stubTokens{})

			_, err := svc.UpdateProfile(helpers.TestCtx(), "u1", req)
			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if store.updateUserCalls != 0 {
				t.Fatal("store should not be updated")
			}
		})
	}
}
