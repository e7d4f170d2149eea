package auth

import (
	"context"
	"sync"
	"time"

	domainUser "food-delivery-backend/internal/domain/user"

	"github.com/google/uuid"
)

type fakeUserRepository struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*domainUser.User
	resets map[string]*domainUser.PasswordResetToken

	// hooks run before the conditional writes, to interleave a competing request
	beforeVerify      func()
	beforeConsume     func()
	failPasswordWrite error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:  make(map[uuid.UUID]*domainUser.User),
		resets: make(map[string]*domainUser.PasswordResetToken),
	}
}

func (f *fakeUserRepository) Create(_ context.Context, u *domainUser.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domainUser.ErrUserAlreadyExists
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUserRepository) find(match func(*domainUser.User) bool) (*domainUser.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	return f.find(func(u *domainUser.User) bool { return u.Email == email })
}

func (f *fakeUserRepository) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	return f.find(func(u *domainUser.User) bool { return u.ID == id })
}

func (f *fakeUserRepository) GetByVerificationToken(_ context.Context, token string) (*domainUser.User, error) {
	if token == "" {
		return nil, domainUser.ErrUserNotFound
	}
	return f.find(func(u *domainUser.User) bool {
		return u.EmailVerificationToken != nil && *u.EmailVerificationToken == token
	})
}

func (f *fakeUserRepository) modify(id uuid.UUID, fn func(*domainUser.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	fn(u)
	return nil
}

func (f *fakeUserRepository) UpdateVerificationToken(_ context.Context, id uuid.UUID, token string, expiry time.Time) error {
	return f.modify(id, func(u *domainUser.User) {
		u.EmailVerificationToken = &token
		u.VerificationTokenExpiry = &expiry
	})
}

func (f *fakeUserRepository) MarkEmailVerified(_ context.Context, id uuid.UUID, token string) error {
	if f.beforeVerify != nil {
		f.beforeVerify()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || token == "" || u.EmailVerificationToken == nil || *u.EmailVerificationToken != token {
		return domainUser.ErrUserNotFound
	}
	u.IsEmailVerified = true
	u.EmailVerificationToken = nil
	u.VerificationTokenExpiry = nil
	return nil
}

func (f *fakeUserRepository) CreatePasswordResetToken(_ context.Context, t *domainUser.PasswordResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	stored := *t
	f.resets[t.Token] = &stored
	return nil
}

func (f *fakeUserRepository) GetPasswordResetToken(_ context.Context, token string) (*domainUser.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.resets[token]
	if !ok {
		return nil, domainUser.ErrTokenNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeUserRepository) ConsumeResetToken(_ context.Context, tokenID, userID uuid.UUID, hash string) error {
	if f.beforeConsume != nil {
		f.beforeConsume()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.resets {
		if t.ID != tokenID {
			continue
		}
		if t.Used {
			return domainUser.ErrTokenAlreadyUsed
		}
		if f.failPasswordWrite != nil {
			return f.failPasswordWrite
		}
		u, ok := f.users[userID]
		if !ok {
			return domainUser.ErrUserNotFound
		}
		t.Used = true
		u.PasswordHashed = hash
		return nil
	}
	return domainUser.ErrTokenNotFound
}

// spend marks a reset token used behind the service's back.
func (f *fakeUserRepository) spend(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.resets[token]; ok {
		t.Used = true
	}
}

func (f *fakeUserRepository) DeleteStaleResetTokens(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for key, t := range f.resets {
		if t.Used || t.ExpiresAt.Before(now) {
			delete(f.resets, key)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeUserRepository) tokenOf(email string) string {
	u, err := f.GetByEmail(context.Background(), email)
	if err != nil || u.EmailVerificationToken == nil {
		return ""
	}
	return *u.EmailVerificationToken
}
