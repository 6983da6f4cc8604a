package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool/internal/model"
	"github.com/Freeeeeet/skischool/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

const userWithInfoColumns = `
	u.id, u.username, u.password_hash, u.role, u.created_at,
	ui.name, ui.surname, ui.email, ui.phone, ui.birthday, ui.ski_type, ui.hourly_rate
`

func scanUserWithInfo(row pgx.Row) (*model.User, error) {
	var user model.User
	var info model.UserInfo
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&info.Name,
		&info.Surname,
		&info.Email,
		&info.Phone,
		&info.Birthday,
		&info.SkiType,
		&info.HourlyRate,
	)
	if err != nil {
		return nil, err
	}
	info.UserID = user.ID
	user.Info = &info
	return &user, nil
}

func collectUsers(rows pgx.Rows) ([]*model.User, error) {
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUserWithInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CreateTx создаёт пользователя вместе с профилем внутри транзакции.
func (r *UserRepository) CreateTx(ctx context.Context, q base.Querier, user *model.User) error {
	query := `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, user.Username, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	info := user.Info
	if info == nil {
		info = &model.UserInfo{}
		user.Info = info
	}
	info.UserID = user.ID

	_, err = q.Exec(ctx, `
		INSERT INTO user_info (user_id, name, surname, email, phone, birthday, ski_type, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, info.Name, info.Surname, info.Email, info.Phone, info.Birthday, info.SkiType, info.HourlyRate)
	if err != nil {
		return fmt.Errorf("create user info: %w", err)
	}

	return nil
}

// GetByID получает пользователя с профилем по ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT ` + userWithInfoColumns + `
		FROM users u
		JOIN user_info ui ON ui.user_id = u.id
		WHERE u.id = $1
	`

	user, err := scanUserWithInfo(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// GetByUsername получает пользователя с профилем по логину.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT ` + userWithInfoColumns + `
		FROM users u
		JOIN user_info ui ON ui.user_id = u.id
		WHERE u.username = $1
	`

	user, err := scanUserWithInfo(r.QueryRow(ctx, query, username))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

// GetByRole получает пользователей роли, по фамилии и имени.
func (r *UserRepository) GetByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	query := `
		SELECT ` + userWithInfoColumns + `
		FROM users u
		JOIN user_info ui ON ui.user_id = u.id
		WHERE u.role = $1
		ORDER BY ui.surname, ui.name
	`

	rows, err := r.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("get users by role: %w", err)
	}
	return collectUsers(rows)
}

// ListStaff получает всех сотрудников школы.
func (r *UserRepository) ListStaff(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT ` + userWithInfoColumns + `
		FROM users u
		JOIN user_info ui ON ui.user_id = u.id
		WHERE u.role IN ('instructor', 'admin', 'owner')
		ORDER BY u.role, ui.surname, ui.name
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return collectUsers(rows)
}

// SearchCustomers ищет клиентов по имени, фамилии, email или телефону.
func (r *UserRepository) SearchCustomers(ctx context.Context, term string, limit int) ([]*model.User, error) {
	query := `
		SELECT ` + userWithInfoColumns + `
		FROM users u
		JOIN user_info ui ON ui.user_id = u.id
		WHERE u.role = 'customer'
		  AND (ui.name ILIKE $1 OR ui.surname ILIKE $1 OR ui.email ILIKE $1 OR ui.phone ILIKE $1)
		ORDER BY ui.surname, ui.name
		LIMIT $2
	`

	rows, err := r.Query(ctx, query, "%"+term+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return collectUsers(rows)
}

// UsernameExists проверяет занятость логина.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

// EmailExists проверяет занятость email.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM user_info WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// UpdateInfo обновляет профиль пользователя.
func (r *UserRepository) UpdateInfo(ctx context.Context, info *model.UserInfo) error {
	query := `
		UPDATE user_info
		SET name = $1, surname = $2, email = $3, phone = $4, birthday = $5, ski_type = $6, hourly_rate = $7
		WHERE user_id = $8
	`

	affected, err := r.ExecAffected(ctx, query,
		info.Name, info.Surname, info.Email, info.Phone, info.Birthday, info.SkiType, info.HourlyRate, info.UserID)
	if err != nil {
		return fmt.Errorf("update user info: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// UpdateRole меняет роль пользователя.
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	affected, err := r.ExecAffected(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// UpdatePasswordHash меняет хеш пароля.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	affected, err := r.ExecAffected(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// Delete удаляет пользователя вместе с профилем (каскад по схеме).
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}
