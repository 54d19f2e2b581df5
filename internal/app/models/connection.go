package models

import "time"

// Connection defines the 'connections' table: a student request to an alumni
type Connection struct {
	ID        int64            `json:"id" db:"id" example:"1"`
	StudentID int64            `json:"studentId" db:"student_id" example:"2"`
	AlumniID  int64            `json:"alumniId" db:"alumni_id" example:"3"`
	Status    ConnectionStatus `json:"status" db:"status" example:"pending"`
	Message   string           `json:"message,omitempty" db:"message"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`

	Student *UserSummary `json:"student,omitempty"`
	Alumni  *UserSummary `json:"alumni,omitempty"`
}
