package types

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Identity document types accepted for users.
const (
	DocumentCC       = "CC"        // Cédula de ciudadanía.
	DocumentTI       = "TI"        // Tarjeta de identidad.
	DocumentCE       = "CE"        // Cédula de extranjería.
	DocumentPPT      = "PPT"       // Permiso por protección temporal.
	DocumentPassport = "Pasaporte" // Passport.
)

// DocumentTypes lists the accepted document types in display order.
var DocumentTypes = []string{DocumentCC, DocumentTI, DocumentCE, DocumentPPT, DocumentPassport}

// User field keys.
const (
	UserDocumentType    = "document_type"
	UserDocumentNumber  = "document_number"
	UserFirstName       = "first_name"
	UserLastName        = "last_name"
	UserName            = "name"
	UserPhone           = "phone"
	UserEmail           = "email"
	UserRole            = "role"
	UserStatus          = "status"
	UserPassword        = "password"
	UserConfirmPassword = "confirm_password"
)

// User is a back-office account.
type User struct {
	ID             int64  `json:"id"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Status         string `json:"status"`
	PasswordHash   string `json:"-"`
}

func (u User) GetID() int64 { return u.ID }

// WithID returns a copy of u carrying id.
func (u User) WithID(id int64) User {
	u.ID = id
	return u
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Field exposes user fields by key. The password hash is never exposed.
func (u User) Field(key string) (any, bool) {
	switch key {
	case "id":
		return u.ID, true
	case UserDocumentType:
		return u.DocumentType, true
	case UserDocumentNumber:
		return u.DocumentNumber, true
	case UserFirstName:
		return u.FirstName, true
	case UserLastName:
		return u.LastName, true
	case UserName:
		return u.FullName(), true
	case UserPhone:
		return u.Phone, true
	case UserEmail:
		return u.Email, true
	case UserRole:
		return u.Role, true
	case UserStatus:
		return u.Status, true
	default:
		return nil, false
	}
}

// Values renders u as a form draft. Password fields are left out; an edit
// only carries them when the user types a new password.
func (u User) Values() Values {
	return Values{
		UserDocumentType:   u.DocumentType,
		UserDocumentNumber: u.DocumentNumber,
		UserFirstName:      u.FirstName,
		UserLastName:       u.LastName,
		UserPhone:          u.Phone,
		UserEmail:          u.Email,
		UserRole:           u.Role,
		UserStatus:         u.Status,
	}
}

// Apply returns a copy of u with every field present in v overwritten.
// A non-empty password is hashed; the confirmation field is ignored.
func (u User) Apply(v Values) (User, error) {
	for key, val := range v {
		switch key {
		case UserDocumentType:
			u.DocumentType = strings.TrimSpace(val)
		case UserDocumentNumber:
			u.DocumentNumber = strings.TrimSpace(val)
		case UserFirstName:
			u.FirstName = strings.TrimSpace(val)
		case UserLastName:
			u.LastName = strings.TrimSpace(val)
		case UserPhone:
			u.Phone = strings.TrimSpace(val)
		case UserEmail:
			u.Email = strings.ToLower(strings.TrimSpace(val))
		case UserRole:
			u.Role = strings.TrimSpace(val)
		case UserStatus:
			u.Status = strings.TrimSpace(val)
		case UserPassword:
			if val == "" {
				continue
			}
			if err := u.SetPassword(val); err != nil {
				return User{}, err
			}
		}
	}
	return u, nil
}

// SetPassword stores a bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword returns ErrPasswordMismatch unless plain matches the stored
// hash. A user without a password never matches.
func (u User) CheckPassword(plain string) error {
	if u.PasswordHash == "" {
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
