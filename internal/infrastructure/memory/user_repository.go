package memory

import (
	"context"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type userRecord struct {
	user entity.User
	seq  int64
}

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio sobre el Store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

// Create persiste un usuario; el email es único.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.users {
		if rec.user.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	if _, ok := r.s.users[user.ID]; ok {
		return domain.ErrConflict
	}
	r.s.users[user.ID] = userRecord{user: *user, seq: r.s.next()}
	return nil
}

// GetByID obtiene un usuario por ID o nil.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	u := rec.user
	return &u, nil
}

// GetByEmail obtiene un usuario por email normalizado o nil.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.users {
		if rec.user.Email == email {
			u := rec.user
			return &u, nil
		}
	}
	return nil, nil
}

// UpdateRole cambia el rol de un usuario existente.
func (r *UserRepo) UpdateRole(_ context.Context, id string, role entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	rec.user.Role = role
	r.s.users[id] = rec
	return nil
}
