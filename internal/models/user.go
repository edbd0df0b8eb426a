package models

import "time"

// Group is a named set of users. Validator groups are referenced by
// workflows and by the scope of metadata form fields. Two names are
// distinguished: "Validator" gates the task list, "Automation" grants
// broad read access for integration tooling.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
}

const (
	GroupValidator  = "Validator"
	GroupAutomation = "Automation"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`

	Groups []Group `gorm:"many2many:user_groups" json:"groups"`
	Custom *Custom `gorm:"foreignKey:UserID" json:"custom,omitempty"`
}

// Custom binds a user to at most one pipeline, marking it as an uploader
// for exactly that pipeline. Users without a Custom row are validators,
// automation accounts or plain users, depending on their groups.
type Custom struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex" json:"user"`
	PipelineID *uint     `json:"pipeline"`
	Pipeline   *Pipeline `gorm:"foreignKey:PipelineID;constraint:OnDelete:SET NULL" json:"-"`
}
