package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin represents the admins table
type Admin struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// BeforeCreate assigns the admin ID before the row is written. The ID is
// generated server-side; it also seeds the partition name.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AdminResponse DTO
type AdminResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Admin) ToResponse() *AdminResponse {
	return &AdminResponse{
		ID:        a.ID,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// Employee represents one row of a per-admin employee table. The table
// name is not fixed: every query goes through a db.Table(...) scope with
// the owning admin's partition name. The unique index on email therefore
// holds per partition, not globally.
type Employee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Department string    `gorm:"size:100;not null" json:"department"`
	Position   string    `gorm:"size:100;not null" json:"position"`
	Salary     float64   `gorm:"not null" json:"salary"`
	JoinDate   string    `gorm:"size:10;not null" json:"join_date"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AutoMigrate creates the fixed tables. Employee partitions are created
// per admin at registration time, not here.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Admin{})
}
