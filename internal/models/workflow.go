package models

// Workflow associates a pipeline with the validator groups that review
// its uploads. A pipeline may carry several workflows; task generation
// walks them in ascending ID order.
type Workflow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `json:"description"`
	PipelineID  *uint     `gorm:"index" json:"pipeline"`
	Pipeline    *Pipeline `gorm:"foreignKey:PipelineID;constraint:OnDelete:SET NULL" json:"-"`

	ValidatorGroups []Group `gorm:"many2many:workflow_validator_groups" json:"validator_groups"`
}

// UploadValidation is one per-group review task of an upload. The
// (upload, group) pair is unique, which makes task generation
// idempotent under concurrent triggers.
type UploadValidation struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UploadID   uint            `gorm:"not null;uniqueIndex:uniq_upload_group" json:"upload"`
	Upload     *Upload         `gorm:"foreignKey:UploadID;constraint:OnDelete:CASCADE" json:"-"`
	WorkflowID *uint           `json:"workflow"`
	Workflow   *Workflow       `gorm:"foreignKey:WorkflowID;constraint:OnDelete:CASCADE" json:"-"`
	GroupID    *uint           `gorm:"uniqueIndex:uniq_upload_group" json:"group"`
	Group      *Group          `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"-"`
	State      ValidationState `gorm:"size:255;default:'NOT_VALIDATED'" json:"state"`
	ValidatedBy string         `gorm:"size:255" json:"validated_by"`
}
