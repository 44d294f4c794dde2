package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"fastcard/database"
	"fastcard/models"
	"fastcard/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RegistrationRequest данные для регистрации. Роль клиент задать не может
type RegistrationRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest данные для входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse ответ с токеном; Message содержит роль при входе и "GOOD" при обновлении
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type UserService struct {
	db         *database.Database
	hasher     *PasswordHasher
	tokens     *TokenService
	activation *ActivationWorkflow
	validate   *validator.Validate
}

func NewUserService(db *database.Database, hasher *PasswordHasher, tokens *TokenService, activation *ActivationWorkflow) *UserService {
	return &UserService{
		db:         db,
		hasher:     hasher,
		tokens:     tokens,
		activation: activation,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register создает учетную запись в состоянии PENDING и отправляет ссылку активации
func (s *UserService) Register(ctx context.Context, req RegistrationRequest) (view *AccountView, err error) {
	start := time.Now()
	defer func() {
		utils.GetMetrics().RecordOperation(utils.OpUserRegister, err)
		utils.LogOperation(utils.OpUserRegister, start, err)
	}()

	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)

	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(req.Password) > MaxPasswordLength {
		return nil, ErrPasswordTooLong
	}
	if username == "" || utf8.RuneCountInString(username) > 50 {
		return nil, ErrInvalidUsername
	}
	if err := s.validate.Var(email, "required,email,max=100"); err != nil {
		return nil, ErrInvalidEmail
	}

	if _, err := s.db.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, internalError("user.register.username", err)
	}
	if _, err := s.db.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, internalError("user.register.email", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, internalError("user.register.hash", err)
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		Password:       hash,
		ActivationLink: s.activation.NewLink(),
		IsActivated:    false,
		Role:           models.RoleUser,
	}
	if err := s.db.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			// проиграли гонку с параллельной регистрацией
			return nil, &Error{Kind: KindConflict, Message: "Username or email already taken", Err: err}
		}
		return nil, internalError("user.register.create", err)
	}

	// Учетная запись уже сохранена: ошибка отправки письма ее не откатывает
	if err := s.activation.Dispatch(ctx, user); err != nil {
		return nil, internalError("user.register.mail", err)
	}

	utils.Log.Info("New user created", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	return newAccountView(user, nil), nil
}

// Login проверяет пароль и выдает токен. Активация при входе не проверяется
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewBadRequest("Email and password are required")
	}

	user, err := s.db.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, internalError("user.login", err)
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		return nil, ErrIncorrectPassword
	}

	token, err := s.tokens.IssueFor(user)
	if err != nil {
		return nil, internalError("user.login.token", err)
	}

	return &TokenResponse{Message: string(user.Role), Token: token}, nil
}

// Activate погашает ссылку активации
func (s *UserService) Activate(ctx context.Context, link string) (view *AccountView, err error) {
	defer func() {
		utils.GetMetrics().RecordOperation(utils.OpUserActivate, err)
	}()

	user, err := s.activation.Redeem(ctx, link)
	if err != nil {
		return nil, err
	}

	card, err := s.findCard(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return newAccountView(user, card), nil
}

// Refresh перевыпускает токен из уже проверенных claims
func (s *UserService) Refresh(claims *Claims) (*TokenResponse, error) {
	token, err := s.tokens.Issue(*claims)
	if err != nil {
		return nil, internalError("user.refresh", err)
	}
	return &TokenResponse{Message: "GOOD", Token: token}, nil
}

// CheckToken проверяет только подпись и срок действия токена
func (s *UserService) CheckToken(token string) error {
	if token == "" {
		return ErrTokenRequired
	}
	if _, err := s.tokens.Verify(token); err != nil {
		return &Error{Kind: KindForbidden, Message: "BAD", Err: err}
	}
	return nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*AccountView, error) {
	user, err := s.db.GetUserByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, internalError("user.get", err)
	}

	card, err := s.findCard(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return newAccountView(user, card), nil
}

// List возвращает все учетные записи без визиток
func (s *UserService) List(ctx context.Context) ([]AccountView, error) {
	users, err := s.db.ListUsers(ctx)
	if err != nil {
		return nil, internalError("user.list", err)
	}

	views := make([]AccountView, 0, len(users))
	for i := range users {
		views = append(views, *newAccountView(&users[i], nil))
	}
	return views, nil
}

// findCard возвращает визитку пользователя или nil, если ее нет
func (s *UserService) findCard(ctx context.Context, userID uint) (*models.BusinessCard, error) {
	card, err := s.db.GetCardByUserID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, internalError("user.card", err)
	}
	return card, nil
}

// normalizeEmail убирает пробелы и приводит email к нижнему регистру
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
