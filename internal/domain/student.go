package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SGPACount is the number of semester grade points a student must submit
// to complete registration. CGPA is the arithmetic mean of the six.
const SGPACount = 6

// Student is a candidate account created on first institutional Google
// login. It stays unregistered (and therefore blind to job listings)
// until the student submits branch and semester grades.
type Student struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoogleID     string             `bson:"google_id" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	RollNumber   string             `bson:"roll_number" json:"roll_number"`
	Branch       string             `bson:"branch,omitempty" json:"branch,omitempty"`
	CGPA         float64            `bson:"cgpa" json:"cgpa"`
	MobileNumber string             `bson:"mobile_number,omitempty" json:"mobile_number,omitempty"`
	SGPA         []float64          `bson:"sgpa" json:"sgpa"`
	Domains      []string           `bson:"domains" json:"domains"`
	IsRegistered bool               `bson:"is_registered" json:"is_registered"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	City         string             `bson:"city,omitempty" json:"city,omitempty"`
	State        string             `bson:"state,omitempty" json:"state,omitempty"`
	Pin          string             `bson:"pin,omitempty" json:"pin,omitempty"`
	ProfilePhoto *FileRef           `bson:"profile_photo,omitempty" json:"profile_photo,omitempty"`
	ResumePDF    *FileRef           `bson:"resume_pdf,omitempty" json:"resume_pdf,omitempty"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// StudentRegistration is the payload that flips IsRegistered. Exactly
// six SGPA values are required; CGPA is derived server-side.
type StudentRegistration struct {
	Branch       string    `json:"branch" validate:"required"`
	SGPA         []float64 `json:"sgpa" validate:"required,len=6,dive,gte=0,lte=10"`
	MobileNumber string    `json:"mobile_number" validate:"omitempty,min=10,max=13"`
	Domains      []string  `json:"domains"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Pin          string    `json:"pin" validate:"omitempty,len=6"`
}

// StudentFilter narrows admin student searches.
type StudentFilter struct {
	Query          string // matches name, email or roll number
	Branch         string
	RegisteredOnly bool
}

type StudentRepository interface {
	Create(ctx context.Context, student *Student) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Student, error)
	GetByGoogleID(ctx context.Context, googleID string) (*Student, error)
	Update(ctx context.Context, student *Student) error
	FetchRegistered(ctx context.Context) ([]Student, error)
	Search(ctx context.Context, filter StudentFilter) ([]Student, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type StudentUsecase interface {
	GetProfile(ctx context.Context, id primitive.ObjectID) (*Student, error)
	Register(ctx context.Context, id primitive.ObjectID, reg StudentRegistration) (*Student, error)
	UploadPhoto(ctx context.Context, id primitive.ObjectID, upload FileUpload) (*FileRef, error)
	UploadResume(ctx context.Context, id primitive.ObjectID, upload FileUpload) (*FileRef, error)
	DeleteAccount(ctx context.Context, id primitive.ObjectID) error
	ListRegistered(ctx context.Context) ([]Student, error)
}
