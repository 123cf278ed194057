package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	ports.UserRepository

	mu      sync.Mutex
	nextID  uint
	users   map[uint]*domain.User
	updates map[uint]map[string]any
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*domain.User), updates: make(map[uint]map[string]any)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Update(_ context.Context, id uint, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if hash, ok := fields["password_hash"].(string); ok {
		u.PasswordHash = hash
	}
	r.updates[id] = fields
	return nil
}

func (r *stubUserRepo) TouchLastActive(_ context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.LastActive = at
	}
	return nil
}

func (r *stubUserRepo) setStatus(id uint, status domain.UserStatus) {
	r.mu.Lock()
	r.users[id].Status = status
	r.mu.Unlock()
}

type recordingActivity struct {
	mu      sync.Mutex
	entries []domain.Activity
}

func (r *recordingActivity) Record(a domain.Activity) {
	r.mu.Lock()
	r.entries = append(r.entries, a)
	r.mu.Unlock()
}

func (r *recordingActivity) kinds() []domain.ActivityType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityType, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.ActivityType)
	}
	return out
}

func newTestAuthService(repo ports.UserRepository, rec ports.ActivityRecorder) *AuthService {
	return NewAuthService(repo, rec, "secret", time.Hour, zerolog.Nop())
}

func registerInput(username string) ports.RegisterInput {
	return ports.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
		UserType: domain.UserTypeAlumni,
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	user, err := svc.Register(context.Background(), registerInput("alice"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected an id to be assigned")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Status != domain.UserStatusPending {
		t.Fatalf("expected pending status, got %s", user.Status)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: " ",
		Email:    "not-an-email",
		Password: "short",
		UserType: domain.UserTypeStudent,
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"username", "email", "password"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected a message for %s, got %v", field, verr.Fields)
		}
	}
}

func TestAuthService_Register_RejectsAdminType(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	in := registerInput("mallory")
	in.UserType = domain.UserTypeAdmin
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), registerInput("bob")); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("bob")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_CreateAdmin(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	in := registerInput("root")
	in.UserType = domain.UserTypeStudent
	user, err := svc.CreateAdmin(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if user.UserType != domain.UserTypeAdmin || user.Status != domain.UserStatusActive {
		t.Fatalf("expected active admin, got %s/%s", user.UserType, user.Status)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	rec := &recordingActivity{}
	svc := newTestAuthService(newStubUserRepo(), rec)

	user, err := svc.Register(context.Background(), registerInput("carol"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	res, err := svc.Login(context.Background(), "carol", "password123", ports.RequestMeta{IPAddress: "10.0.0.1"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.ExpiresIn != int64(time.Hour.Seconds()) {
		t.Fatalf("unexpected expires_in: %d", res.ExpiresIn)
	}

	parsed, err := jwt.Parse(res.Token, func(*jwt.Token) (any, error) { return []byte("secret"), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if sub, _ := claims.GetSubject(); sub != "1" {
		t.Fatalf("unexpected sub claim: %q", sub)
	}
	if claims["username"] != "carol" || claims["user_type"] != string(domain.UserTypeAlumni) {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}

	kinds := rec.kinds()
	if len(kinds) != 1 || kinds[0] != domain.ActivityLogin {
		t.Fatalf("expected one login activity, got %v", kinds)
	}
	if res.User.ID != user.ID {
		t.Fatalf("expected user %d in result, got %d", user.ID, res.User.ID)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	if _, err := svc.Register(context.Background(), registerInput("dave")); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "dave", "wrongpassword"},
		{"unknown user", "nobody", "password123"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.username, tc.password, ports.RequestMeta{})
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_Suspended(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	user, err := svc.Register(context.Background(), registerInput("erin"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	repo.setStatus(user.ID, domain.UserStatusSuspended)

	if _, err := svc.Login(context.Background(), "erin", "password123", ports.RequestMeta{}); !errors.Is(err, domain.ErrAccountSuspended) {
		t.Fatalf("expected ErrAccountSuspended, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ChangePassword
// ---------------------------------------------------------------------------

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	user, err := svc.Register(context.Background(), registerInput("frank"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	actor := domain.Actor{UserID: user.ID, Username: user.Username, UserType: user.UserType}

	if err := svc.ChangePassword(context.Background(), actor, "wrongpassword", "newpassword1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), actor, "password123", "short"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), actor, "password123", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if _, err := svc.Login(context.Background(), "frank", "newpassword1", ports.RequestMeta{}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
