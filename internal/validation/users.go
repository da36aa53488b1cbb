package validation

import (
	"regexp"
	"strings"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// documentRule is the number format accepted for one document type.
type documentRule struct {
	re  *regexp.Regexp
	msg string
}

var documentRules = map[string]documentRule{
	types.DocumentCC:       {regexp.MustCompile(`^\d{6,10}$`), "CC must have 6 to 10 digits"},
	types.DocumentTI:       {regexp.MustCompile(`^\d{10,11}$`), "TI must have 10 or 11 digits"},
	types.DocumentCE:       {regexp.MustCompile(`^\d{6,10}$`), "CE must have 6 to 10 digits"},
	types.DocumentPPT:      {regexp.MustCompile(`^\d{7,10}$`), "PPT must have 7 to 10 digits"},
	types.DocumentPassport: {regexp.MustCompile(`^[A-Za-z0-9]{6,10}$`), "passport must have 6 to 10 letters or digits"},
}

// DocumentNumber checks the number against the format of the draft's
// document type. An unknown type is left to the document type rule.
func DocumentNumber() Rule {
	return func(value string, draft types.Values, _ Context) string {
		value = strings.TrimSpace(value)
		if value == "" {
			return ""
		}
		rule, ok := documentRules[strings.TrimSpace(draft[types.UserDocumentType])]
		if !ok {
			return ""
		}
		if !rule.re.MatchString(value) {
			return rule.msg
		}
		return ""
	}
}

// Users returns the user validator. roles lists the role names a user may
// be assigned; nil accepts any non-blank role.
func Users(roles func() []string) *Validator {
	return New("user",
		Field(types.UserDocumentType, EditValidate,
			Required("document type is required"),
			OneOf(types.DocumentTypes, "document type must be one of CC, TI, CE, PPT, Pasaporte")),
		Field(types.UserDocumentNumber, EditValidate,
			Required("document number is required"),
			DocumentNumber(),
			Unique(types.UserDocumentNumber, "document number is already registered")),
		Field(types.UserFirstName, EditValidate,
			Required("first name is required"),
			Letters("first name may only contain letters"),
			MaxLength(50, "first name must have at most 50 characters")),
		Field(types.UserLastName, EditValidate,
			Required("last name is required"),
			Letters("last name may only contain letters"),
			MaxLength(50, "last name must have at most 50 characters")),
		Field(types.UserPhone, EditValidate,
			Required("phone is required"),
			Digits("phone may only contain digits"),
			Length(10, "phone must have exactly 10 digits"),
			Unique(types.UserPhone, "phone is already registered")),
		Field(types.UserEmail, EditValidate,
			Required("email is required"),
			Email("email is not a valid address"),
			Unique(types.UserEmail, "email is already registered")),
		Field(types.UserRole, EditValidate,
			Required("role is required"),
			InSet(roles, "role does not exist or is inactive")),
		Field(types.UserStatus, EditValidate,
			Required("status is required"),
			OneOf(types.Statuses, "status must be active or inactive")),
		Field(types.UserPassword, EditOptional,
			Required("password is required"),
			MinLength(6, "password must have at least 6 characters")).
			After(types.UserConfirmPassword),
		Field(types.UserConfirmPassword, EditOptional,
			Required("password confirmation is required"),
			EqualsField(types.UserPassword, "passwords do not match")).
			After(types.UserPassword),
	)
}
