package models

// Pipeline scopes file-type rules, the metadata form schema and the
// validation workflows for a class of uploads. Uploaders are bound to
// exactly one pipeline through Custom.
type Pipeline struct {
	ID                             uint   `gorm:"primaryKey" json:"id"`
	Name                           string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description                    string `gorm:"not null" json:"description"`
	DefaultSameMetadataForEachFile bool   `gorm:"default:true" json:"default_same_metadata_for_each_file"`
	CanEditSameMetadataForEachFile bool   `gorm:"default:true" json:"can_edit_same_metadata_for_each_file"`
	MaxSizeInByte                  int64  `gorm:"not null" json:"max_size_in_byte"`

	Mimes     []AllowedFileType   `gorm:"many2many:pipeline_mimes" json:"mimes"`
	Fields    []MetadataFormField `gorm:"foreignKey:PipelineID;constraint:OnDelete:CASCADE" json:"fields"`
	Workflows []Workflow          `gorm:"foreignKey:PipelineID" json:"-"`
}

// AllowedFileType is a MIME type that one or more pipelines accept.
type AllowedFileType struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Mime      string     `gorm:"size:255;not null" json:"mime"`
	Pipelines []Pipeline `gorm:"many2many:pipeline_mimes" json:"-"`
}

// MetadataFormField describes one entry of a pipeline's metadata form.
// A field with a non-nil scope is visible only to members of that group;
// uploaders see unscoped fields exclusively.
type MetadataFormField struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PipelineID   uint      `gorm:"not null;uniqueIndex:uniq_key_per_pipeline" json:"pipeline"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:uniq_key_per_pipeline" json:"key"`
	Label        string    `gorm:"size:255" json:"label"`
	Description  string    `json:"description"`
	Type         FieldType `gorm:"size:255;default:'TEXT'" json:"type"`
	Required     bool      `gorm:"default:false" json:"required"`
	Order        int       `gorm:"default:0" json:"order"`
	ScopeID      *uint     `json:"scope"`
	Scope        *Group    `gorm:"foreignKey:ScopeID;constraint:OnDelete:CASCADE" json:"-"`
	DefaultValue string    `json:"default_value"`

	Options []FieldOption `gorm:"foreignKey:FormFieldID;constraint:OnDelete:CASCADE" json:"options"`
}

// FieldOption is one choice of a SELECT or CHECKBOX field.
type FieldOption struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FormFieldID uint   `gorm:"not null;uniqueIndex:uniq_key_per_form_field" json:"form_field"`
	Key         string `gorm:"size:255;not null;uniqueIndex:uniq_key_per_form_field" json:"key"`
	Value       string `gorm:"size:255;not null" json:"value"`
	Order       int    `gorm:"default:0" json:"order"`
	Default     bool   `gorm:"column:dflt;default:false" json:"dflt"`
}
