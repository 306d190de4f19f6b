package dto

// CredentialsFormDTO carries the username/password pair posted by the
// login and register forms. Values are whitespace-trimmed before validation.
type CredentialsFormDTO struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=64"`
}
