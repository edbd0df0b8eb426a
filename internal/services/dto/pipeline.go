package dto

import "uploadhub_backend/internal/models"

// FieldView decorates a form field with the display name of its scope
// group (the group description, when the field is scoped).
type FieldView struct {
	models.MetadataFormField
	ScopeGroupName *string `json:"scope_group_name"`
}

// PipelineView is the resolved schema of a pipeline: fields ordered by
// (scope, order), each with ordered options, plus the mime allow-list
// and size limit. A scoped resolution carries only the fields the
// requester may see.
type PipelineView struct {
	ID                             uint                     `json:"id"`
	Name                           string                   `json:"name"`
	Description                    string                   `json:"description"`
	MaxSizeInByte                  int64                    `json:"max_size_in_byte"`
	DefaultSameMetadataForEachFile bool                     `json:"default_same_metadata_for_each_file"`
	CanEditSameMetadataForEachFile bool                     `json:"can_edit_same_metadata_for_each_file"`
	Mimes                          []models.AllowedFileType `json:"mimes"`
	Fields                         []FieldView              `json:"fields"`
}

// UserView is the resolved identity returned by the me endpoint.
type UserView struct {
	ID           uint           `json:"id"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	Pipeline     *uint          `json:"pipeline"`
	PipelineName string         `json:"pipeline_name"`
	Groups       []models.Group `json:"groups"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        UserView `json:"user"`
}
