package auth

import (
	"context"
	"strings"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/event"
	"github.com/renexpress/storefront-api/internal/domain/repository"
	"github.com/renexpress/storefront-api/pkg/jwt"
	"github.com/renexpress/storefront-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// FieldError dato obligatorio ausente o inválido en login/registro. Envuelve domain.ErrInvalidInput.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Unwrap() error { return domain.ErrInvalidInput }

// AuthUseCase login y registro de clientes contra el backend del marketplace. Las credenciales
// viven en el backend; aquí solo se valida el formulario y se emite el token de sesión.
type AuthUseCase struct {
	gateway repository.AuthGateway
	events  repository.EventPublisher
	jwtCfg  JWTConfig
	log     *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. events puede ser nil.
func NewAuthUseCase(gateway repository.AuthGateway, events repository.EventPublisher, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{gateway: gateway, events: events, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Login normaliza las credenciales (usuario en mayúsculas), las verifica en el backend y emite el token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	username := strings.ToUpper(strings.TrimSpace(in.Username))
	password := strings.TrimSpace(in.Password)
	if username == "" {
		return nil, &FieldError{Field: "username", Message: "el usuario es obligatorio"}
	}
	if password == "" {
		return nil, &FieldError{Field: "password", Message: "la contraseña es obligatoria"}
	}

	client, err := uc.gateway.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if client.Username == "" {
		client.Username = username
	}
	res, err := uc.session(client)
	if err != nil {
		return nil, err
	}
	if uc.events != nil {
		ev := event.New(event.TypeClientLoggedIn, event.ClientLoggedIn{ClientID: string(client.ID), Username: client.Username})
		if err := uc.events.Publish(ctx, string(client.ID), ev); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo publicar el evento de login")
		}
	}
	return res, nil
}

// Register da de alta al cliente; exige aceptar los términos.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	fullName := strings.Join(strings.Fields(in.FullName), " ")
	phone := strings.TrimSpace(in.Phone)
	switch {
	case fullName == "":
		return nil, &FieldError{Field: "full_name", Message: "el nombre es obligatorio"}
	case phone == "":
		return nil, &FieldError{Field: "phone", Message: "el teléfono es obligatorio"}
	case !in.AgreeTerms:
		return nil, &FieldError{Field: "agree_terms", Message: "debes aceptar los términos"}
	}

	client, err := uc.gateway.Register(ctx, fullName, phone)
	if err != nil {
		return nil, err
	}
	if client.FullName == "" {
		client.FullName = fullName
	}
	if client.Phone == "" {
		client.Phone = phone
	}
	return uc.session(client)
}

func (uc *AuthUseCase) session(client *entity.Client) (*dto.AuthResponse, error) {
	if client == nil || client.ID.IsZero() {
		return nil, domain.ErrUpstream
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, string(client.ID), client.Username, entity.RoleClient, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Client:    ToClientDTO(client),
	}, nil
}

// ToClientDTO convierte el cliente a su respuesta.
func ToClientDTO(c *entity.Client) dto.ClientDTO {
	return dto.ClientDTO{ID: c.ID, Username: c.Username, FullName: c.FullName, Phone: c.Phone, Email: c.Email}
}
