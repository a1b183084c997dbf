package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/dto"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/validation"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/repository"
)

// TokenIssuer es lo que el caso de uso necesita del servicio de tokens.
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
	TTL() time.Duration
}

// AuthUseCase casos de uso de autenticación: registro, login e identidad.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokens    TokenIssuer
	validator *validation.Validator
	hashCost  int
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenIssuer, v *validation.Validator) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		tokens:    tokens,
		validator: v,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
}

// WithHashCost ajusta el coste de bcrypt (tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.hashCost = cost
	return uc
}

// RegisterUser crea un usuario con rol user. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.createUser(ctx, in.Name, in.Email, in.Password, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (uc *AuthUseCase) createUser(ctx context.Context, name, email, password string, role entity.Role) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// El repositorio también traduce la violación de unicidad a ErrEmailAlreadyExists (carrera entre registros).
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica email/password y emite un token de sesión con identidad y rol.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	issuedAt := uc.now()
	token, err := uc.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: issuedAt.Add(uc.tokens.TTL()).UTC(),
		Message:   "Inicio de sesión exitoso",
		User:      *ToUserResponse(user),
	}, nil
}

// Identity completa la identidad del token con los datos de perfil, si el usuario sigue existiendo.
func (uc *AuthUseCase) Identity(ctx context.Context, userID string, role entity.Role) (*dto.Identity, error) {
	out := &dto.Identity{UserID: userID, Role: string(role)}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		out.Name = user.Name
		out.Email = user.Email
	}
	return out, nil
}

// EnsureAdmin garantiza que exista una cuenta admin con ese email (escalado de rol fuera de banda).
// Si el usuario existe con rol user, se promueve; la contraseña existente no se modifica.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) (*entity.User, bool, error) {
	email = entity.NormalizeEmail(email)
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		if user.Role.IsAdmin() {
			return user, false, nil
		}
		if err := uc.userRepo.UpdateRole(ctx, user.ID, entity.RoleAdmin); err != nil {
			return nil, false, err
		}
		user.Role = entity.RoleAdmin
		return user, true, nil
	}
	user, err = uc.createUser(ctx, "Administrador", email, password, entity.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// ToUserResponse convierte la entidad a su representación pública.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		IsAdmin:   u.Role.IsAdmin(),
		CreatedAt: u.CreatedAt,
	}
}
