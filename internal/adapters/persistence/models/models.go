package models

import (
	"time"

	"gorm.io/gorm"
)

// Registrant roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Registrant represents registrants table
type Registrant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	Age        int       `gorm:"not null" json:"age"`
	BloodGroup string    `gorm:"size:5;not null;index" json:"blood_group"`
	Gender     string    `gorm:"size:20" json:"gender"`
	Email      string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Phone      string    `gorm:"size:20" json:"phone"`
	Address    string    `gorm:"size:255" json:"address"`
	ZipCode    string    `gorm:"size:10" json:"zip_code"`
	Role       string    `gorm:"size:20;default:'USER'" json:"role"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Registrant) TableName() string {
	return "registrants"
}

// RegistrantResponse DTO
type RegistrantResponse struct {
	ID         uint      `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Age        int       `json:"age"`
	BloodGroup string    `json:"blood_group"`
	Gender     string    `json:"gender"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	ZipCode    string    `json:"zip_code"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *Registrant) ToResponse() *RegistrantResponse {
	return &RegistrantResponse{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Age:        r.Age,
		BloodGroup: r.BloodGroup,
		Gender:     r.Gender,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		ZipCode:    r.ZipCode,
		Role:       r.Role,
		CreatedAt:  r.CreatedAt,
	}
}

func (r *Registrant) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// OrganRequest represents organ_requests table.
// A row exists only while pending: a successful fulfillment deletes it,
// so presence in the table means the request is still open.
type OrganRequest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RegistrantID uint      `gorm:"not null;index" json:"registrant_id"`
	OrganType    string    `gorm:"size:50;not null" json:"organ_type"`
	BloodGroup   string    `gorm:"size:5;not null;index" json:"blood_group"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	RequestType  string    `gorm:"size:50" json:"request_type"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Address      string    `gorm:"size:255" json:"address"`
	ZipCode      string    `gorm:"size:10" json:"zip_code"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Registrant *Registrant `gorm:"foreignKey:RegistrantID" json:"registrant,omitempty"`
}

func (OrganRequest) TableName() string {
	return "organ_requests"
}

// OrganRequestResponse DTO including requester identity
type OrganRequestResponse struct {
	ID          uint      `json:"id"`
	OrganType   string    `json:"organ_type"`
	BloodGroup  string    `json:"blood_group"`
	Quantity    int       `json:"quantity"`
	RequestType string    `json:"request_type"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	ZipCode     string    `json:"zip_code"`
	CreatedAt   time.Time `json:"created_at"`
	Requester   string    `json:"requester,omitempty"`
}

func (r *OrganRequest) ToResponse() *OrganRequestResponse {
	resp := &OrganRequestResponse{
		ID:          r.ID,
		OrganType:   r.OrganType,
		BloodGroup:  r.BloodGroup,
		Quantity:    r.Quantity,
		RequestType: r.RequestType,
		Phone:       r.Phone,
		Address:     r.Address,
		ZipCode:     r.ZipCode,
		CreatedAt:   r.CreatedAt,
	}

	if r.Registrant != nil {
		resp.Requester = r.Registrant.FirstName + " " + r.Registrant.LastName
	}

	return resp
}

// DonorProfile represents donor_profiles table.
// One row per fulfillment event; never updated afterwards.
type DonorProfile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RegistrantID  uint      `gorm:"not null;index" json:"registrant_id"`
	Weight        float64   `json:"weight"`
	BMI           float64   `gorm:"column:bmi" json:"bmi"`
	OperationType string    `gorm:"size:100" json:"operation_type"`
	OperationDesc string    `gorm:"type:text" json:"operation_desc"`
	DiseaseType   string    `gorm:"size:100" json:"disease_type"`
	DiseaseDesc   string    `gorm:"type:text" json:"disease_desc"`
	AccidentType  string    `gorm:"size:100" json:"accident_type"`
	AccidentDesc  string    `gorm:"type:text" json:"accident_desc"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	Registrant *Registrant `gorm:"foreignKey:RegistrantID" json:"registrant,omitempty"`
}

func (DonorProfile) TableName() string {
	return "donor_profiles"
}

// DonationRecord represents donation_records table
type DonationRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RegistrantID uint      `gorm:"not null;index" json:"registrant_id"`
	BloodGroup   string    `gorm:"size:5;not null" json:"blood_group"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	DonatedAt    time.Time `gorm:"type:date;not null" json:"donated_at"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Registrant *Registrant `gorm:"foreignKey:RegistrantID" json:"registrant,omitempty"`
}

func (DonationRecord) TableName() string {
	return "donation_records"
}

// DonationRecordResponse DTO including donor identity
type DonationRecordResponse struct {
	ID         uint      `json:"id"`
	BloodGroup string    `json:"blood_group"`
	Quantity   int       `json:"quantity"`
	DonatedAt  time.Time `json:"donated_at"`
	Donor      string    `json:"donor,omitempty"`
}

func (r *DonationRecord) ToResponse() *DonationRecordResponse {
	resp := &DonationRecordResponse{
		ID:         r.ID,
		BloodGroup: r.BloodGroup,
		Quantity:   r.Quantity,
		DonatedAt:  r.DonatedAt,
	}

	if r.Registrant != nil {
		resp.Donor = r.Registrant.FirstName + " " + r.Registrant.LastName
	}

	return resp
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RegistrantID uint       `gorm:"index;not null" json:"registrant_id"`
	TokenHash    string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt    time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt    *time.Time `gorm:"index" json:"revoked_at"`

	Registrant *Registrant `gorm:"foreignKey:RegistrantID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// AutoMigrate runs auto migration for all registry tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Registrant{},
		&RefreshToken{},
		&OrganRequest{},
		&DonorProfile{},
		&DonationRecord{},
	)
}
