package models

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`

	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone,omitempty"`
	BirthDate    string `json:"birthDate,omitempty"`
	City         string `json:"city,omitempty"`
	HebrewLevel  string `json:"hebrewLevel,omitempty"`
	AliyahStatus string `json:"aliyahStatus,omitempty"`
	Newsletter   bool   `json:"newsletter"`
}

// User returns the account part of the request. The password is not copied.
func (r RegisterRequest) User() User {
	return User{
		Email:    r.Email,
		Language: r.Language,
	}
}

// Profile returns the personal part of the request.
func (r RegisterRequest) Profile() Profile {
	return Profile{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		BirthDate:    r.BirthDate,
		City:         r.City,
		HebrewLevel:  r.HebrewLevel,
		AliyahStatus: r.AliyahStatus,
		Newsletter:   r.Newsletter,
	}
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ContactMessage is the body of POST /api/contact.
type ContactMessage struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Language string `json:"-"`
}
