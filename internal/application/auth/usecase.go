package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Agromercado-api/internal/application/dto"
	"github.com/jhoicas/Agromercado-api/internal/domain"
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/event"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
	"github.com/jhoicas/Agromercado-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
// El registro de un cliente crea además su perfil y su cuenta de fidelidad,
// y emite el evento de bienvenida.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	clientRepo  repository.ClientRepository
	loyaltyRepo repository.LoyaltyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	loyaltyRepo repository.LoyaltyRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, clientRepo: clientRepo, loyaltyRepo: loyaltyRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea password con bcrypt y persiste. Devuelve
// ErrEmailAlreadyExists si el email ya existe. Para el rol cliente crea el
// perfil con saldo cero y la cuenta de fidelidad vacía.
func (uc *AuthUseCase) Register(_ context.Context, in dto.RegisterRequest) (*dto.UserResponse, []event.Event, error) {
	if in.Email == "" || in.Password == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	role := in.Role
	if role == "" {
		role = entity.RoleCliente
	}
	language := in.Language
	if language == "" {
		language = "fr"
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Language:     language,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, nil, err
	}

	var events []event.Event
	if role == entity.RoleCliente {
		client := &entity.ClientProfile{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Location:  in.Location,
			CreatedAt: now,
		}
		if err := uc.clientRepo.Create(client); err != nil {
			return nil, nil, err
		}
		account := &entity.LoyaltyAccount{
			ID:          uuid.New().String(),
			ClientID:    client.ID,
			LastUpdated: now,
		}
		if err := uc.loyaltyRepo.Create(account); err != nil {
			return nil, nil, err
		}
		events = append(events, event.New(
			event.KindNewClient,
			user.ID,
			"Bienvenue sur la plateforme !",
			map[string]string{"client_id": client.ID},
		))
	}
	return toUserResponse(user), events, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Language:  u.Language,
		CreatedAt: u.CreatedAt,
	}
}
