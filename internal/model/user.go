package model

import "time"

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
	RoleOwner      Role = "owner"
)

// ValidRole проверяет, что строка — известная роль.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleInstructor, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	// Профиль (не из таблицы users)
	Info *UserInfo `json:"info,omitempty"`
}

// UserInfo — профиль пользователя.
type UserInfo struct {
	UserID     int64  `json:"user_id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Birthday   string `json:"birthday"` // "YYYY-MM-DD", может быть пустым
	SkiType    string `json:"ski_type"` // "ski" | "snowboard" | ""
	HourlyRate int    `json:"hourly_rate"`
}

// IsStaff проверяет, что пользователь — сотрудник школы.
func (u *User) IsStaff() bool {
	return u.Role == RoleInstructor || u.Role == RoleAdmin || u.Role == RoleOwner
}

// CanManageRequests проверяет право обрабатывать заявки инструкторов.
func (u *User) CanManageRequests() bool {
	return u.Role == RoleAdmin || u.Role == RoleOwner
}

// FullName возвращает имя и фамилию из профиля.
func (u *User) FullName() string {
	if u.Info == nil {
		return u.Username
	}
	return u.Info.Name + " " + u.Info.Surname
}
