package model

import "time"

const (
	RoleIntern = "intern"
	RoleAdmin  = "admin"
)

const (
	UserActive    = "active"
	UserCompleted = "completed"
	UserArchived  = "archived"
)

// Policy defaults applied when a user has no per-user override.
const (
	DefaultDailyRequiredHours       = 9.0
	DefaultMaxStandardOvertimeHours = 3.0
)

type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Email        string  `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string  `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	FirstName    string  `gorm:"column:first_name;type:varchar(100)" json:"firstName"`
	LastName     string  `gorm:"column:last_name;type:varchar(100)" json:"lastName"`
	Role         string  `gorm:"column:role;type:varchar(10);not null;default:intern" json:"role"`
	School       string  `gorm:"column:school;type:varchar(255)" json:"school"`
	Supervisor   string  `gorm:"column:supervisor;type:varchar(255)" json:"supervisor"`
	BadgeTag     *string `gorm:"column:badge_tag;type:varchar(50);uniqueIndex" json:"badgeTag"`

	RequiredHours            float64 `gorm:"column:required_hours;type:decimal(10,2);not null;default:0" json:"requiredHours"`
	DailyRequiredHours       float64 `gorm:"column:daily_required_hours;type:decimal(10,2);not null;default:9" json:"dailyRequiredHours"`
	MaxStandardOvertimeHours float64 `gorm:"column:max_standard_overtime_hours;type:decimal(10,2);not null;default:3" json:"maxStandardOvertimeHours"`

	Status    string     `gorm:"column:status;type:varchar(10);not null;default:active" json:"status"`
	StartDate *time.Time `gorm:"column:start_date;type:date" json:"startDate"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// DailyPolicy returns the per-day hour budget and standard overtime cap,
// falling back to program defaults when the user carries no override.
func (u *User) DailyPolicy() (dailyRequired, maxStandardOT float64) {
	dailyRequired = u.DailyRequiredHours
	if dailyRequired <= 0 {
		dailyRequired = DefaultDailyRequiredHours
	}
	maxStandardOT = u.MaxStandardOvertimeHours
	if maxStandardOT <= 0 {
		maxStandardOT = DefaultMaxStandardOvertimeHours
	}
	return dailyRequired, maxStandardOT
}
