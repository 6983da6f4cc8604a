package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/skischool/internal/model"
	"github.com/Freeeeeet/skischool/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameTaken — имя пользователя уже занято.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrEmailTaken — email уже зарегистрирован.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// StaffService — учётные записи: регистрация клиентов, создание
// персонала владельцем, аутентификация и смена ролей.
type StaffService struct {
	pool     *pgxpool.Pool
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewStaffService(pool *pgxpool.Pool, userRepo *repository.UserRepository, logger *zap.Logger) *StaffService {
	return &StaffService{
		pool:     pool,
		userRepo: userRepo,
		logger:   logger,
	}
}

// deriveUsername строит логин из локальной части email; suffix > 0
// добавляется числом, когда базовый вариант занят.
func deriveUsername(email string, suffix int) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}
	local = strings.ToLower(local)
	if suffix > 0 {
		return fmt.Sprintf("%s%d", local, suffix)
	}
	return local
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// RegisterCustomer регистрирует клиента с выбранным им логином.
func (s *StaffService) RegisterCustomer(ctx context.Context, username, password string, info *model.UserInfo) (*model.User, error) {
	taken, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	if info != nil && info.Email != "" {
		taken, err = s.userRepo.EmailExists(ctx, info.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	return s.createUser(ctx, username, password, model.RoleCustomer, info)
}

// CreateStaff создаёт инструктора или админа. Логин выводится из
// email; при коллизии подбирается числовой суффикс.
func (s *StaffService) CreateStaff(ctx context.Context, role model.Role, password string, info *model.UserInfo) (*model.User, error) {
	if role != model.RoleInstructor && role != model.RoleAdmin {
		return nil, fmt.Errorf("unexpected staff role: %s", role)
	}
	if info == nil || info.Email == "" {
		return nil, fmt.Errorf("staff email is required")
	}

	taken, err := s.userRepo.EmailExists(ctx, info.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	var username string
	for suffix := 0; ; suffix++ {
		username = deriveUsername(info.Email, suffix)
		exists, err := s.userRepo.UsernameExists(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if !exists {
			break
		}
	}

	return s.createUser(ctx, username, password, role, info)
}

func (s *StaffService) createUser(ctx context.Context, username, password string, role model.Role, info *model.UserInfo) (*model.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Info:         info,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = s.userRepo.CreateTx(ctx, tx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", username),
		zap.String("role", string(role)),
	)

	return user, nil
}

// Authenticate проверяет пару логин/пароль.
func (s *StaffService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ChangeRole меняет роль пользователя.
func (s *StaffService) ChangeRole(ctx context.Context, userID int64, role model.Role) error {
	if !model.ValidRole(role) {
		return fmt.Errorf("unexpected role: %s", role)
	}

	err := s.userRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	s.logger.Info("User role changed",
		zap.Int64("user_id", userID),
		zap.String("role", string(role)),
	)

	return nil
}

// ChangePassword устанавливает новый пароль.
func (s *StaffService) ChangePassword(ctx context.Context, userID int64, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	err = s.userRepo.UpdatePasswordHash(ctx, userID, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.Info("User password changed", zap.Int64("user_id", userID))
	return nil
}

// UpdateProfile обновляет анкету пользователя.
func (s *StaffService) UpdateProfile(ctx context.Context, info *model.UserInfo) error {
	err := s.userRepo.UpdateInfo(ctx, info)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info("User profile updated", zap.Int64("user_id", info.UserID))
	return nil
}

// DeleteUser удаляет учётную запись вместе с анкетой.
func (s *StaffService) DeleteUser(ctx context.Context, userID int64) error {
	err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("User deleted", zap.Int64("user_id", userID))
	return nil
}

// ListStaff получает инструкторов и админов.
func (s *StaffService) ListStaff(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.ListStaff(ctx)
}

// SearchCustomers ищет клиентов по имени, фамилии или логину.
func (s *StaffService) SearchCustomers(ctx context.Context, term string, limit int) ([]*model.User, error) {
	return s.userRepo.SearchCustomers(ctx, term, limit)
}

// GetByID получает пользователя по ID.
func (s *StaffService) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
