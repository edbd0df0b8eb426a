package models

import "time"

// Upload is the unit of work: one submission of one user under one
// pipeline. User and pipeline references survive deletion of their
// targets (SET NULL) so the record keeps its audit value; everything
// the upload owns is cascade-deleted with it.
type Upload struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	UserID              *uint        `gorm:"index" json:"user"`
	User                *User        `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	PipelineID          *uint        `gorm:"index" json:"pipeline"`
	Pipeline            *Pipeline    `gorm:"foreignKey:PipelineID;constraint:OnDelete:SET NULL" json:"-"`
	UploadedAt          time.Time    `gorm:"not null" json:"uploaded_at"`
	SameMetaForEachFile bool         `gorm:"default:true" json:"same_meta_for_each_file"`
	Status              UploadStatus `gorm:"size:13;default:'INIT'" json:"status"`

	Files       []FileUpload       `gorm:"foreignKey:UploadID;constraint:OnDelete:CASCADE" json:"files"`
	Validations []UploadValidation `gorm:"foreignKey:UploadID;constraint:OnDelete:CASCADE" json:"validations"`
	Notes       []Note             `gorm:"foreignKey:UploadID;constraint:OnDelete:CASCADE" json:"-"`
}

// FileUpload is one stored file of an upload.
type FileUpload struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UploadID uint   `gorm:"not null;index" json:"upload"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Path     string `gorm:"size:512;not null" json:"-"`
	Size     int64  `json:"size"`
	Checksum string `gorm:"size:255" json:"checksum"`
	// Type is the file type string declared by the client, not the
	// server-detected MIME type.
	Type string `gorm:"size:255" json:"type"`

	Values []MetadataValue `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE" json:"values"`
}

// MetadataValue holds the current value of one metadata key for one
// file. Writes go through upsert-by-key: a (file, key) pair is unique
// and updated in place, never duplicated.
type MetadataValue struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	FileID uint   `gorm:"not null;uniqueIndex:uniq_key_per_file" json:"file"`
	Key    string `gorm:"size:255;not null;uniqueIndex:uniq_key_per_file" json:"key"`
	Value  string `gorm:"not null" json:"value"`
}

// Note is a free-text annotation on an upload, written by validators.
type Note struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UploadID uint      `gorm:"not null;index" json:"upload"`
	Note     string    `json:"note"`
	User     string    `gorm:"size:255;not null" json:"user"`
	Created  time.Time `gorm:"autoUpdateTime" json:"created"`
}
