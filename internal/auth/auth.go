// internal/auth/auth.go

// Package auth implements the registration and login flows. Client-side
// validation failures are ValidationErrors and never reach the network;
// server rejections surface with the operation-name prefixes the UI shows.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/halicare/clinicdash/internal/httpclient"
)

// ValidationError is a client-side form error. It blocks submission and is
// displayed inline.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CredentialWriter is the write side of the credential store.
type CredentialWriter interface {
	Set(token string)
	Clear()
}

// Session is the outcome of a successful login.
type Session struct {
	Token  string
	UserID string
}

// Flow runs registration and login against the backend.
type Flow struct {
	client *httpclient.Client
	creds  CredentialWriter
}

func New(client *httpclient.Client, creds CredentialWriter) *Flow {
	return &Flow{client: client, creds: creds}
}

// RegistrationForm carries the sign-up fields as typed. The phone number is
// submitted verbatim, not normalized.
type RegistrationForm struct {
	FirstName            string
	LastName             string
	PhoneNumber          string
	Password             string
	PasswordConfirmation string
}

func (f RegistrationForm) validate() error {
	if f.FirstName == "" {
		return &ValidationError{Field: "first_name", Message: "First name is required."}
	}
	if f.LastName == "" {
		return &ValidationError{Field: "last_name", Message: "Last name is required."}
	}
	if !IsPhoneNumber(f.PhoneNumber) {
		return &ValidationError{Field: "phone_number", Message: "Enter a valid phone number."}
	}
	if f.Password == "" {
		return &ValidationError{Field: "password", Message: "Password is required."}
	}
	if f.Password != f.PasswordConfirmation {
		return &ValidationError{Field: "password_confirmation", Message: "Passwords do not match."}
	}
	return nil
}

type registerPayload struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	PhoneNumber          string `json:"phone_number"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	UserType             string `json:"user_type"`
}

// Register signs up a clinician account. The caller routes to the login
// page on success.
func (f *Flow) Register(ctx context.Context, form RegistrationForm) error {
	if err := form.validate(); err != nil {
		return err
	}

	payload := registerPayload{
		FirstName:            form.FirstName,
		LastName:             form.LastName,
		PhoneNumber:          form.PhoneNumber,
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
		UserType:             "CLINICIAN",
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := f.client.PostJSON(ctx, "/api/register", payload, &resp); err != nil {
		return fmt.Errorf("Failed to register: Registration failed: %w", err)
	}

	log.Info().Str("phone", NormalizePhone(form.PhoneNumber)).Msg("Account registered")
	return nil
}

type loginPayload struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// Login exchanges phone and password for a session token. On success the
// token is stored in the credential store before returning; clinic
// resolution runs after this completes, never concurrently with it.
func (f *Flow) Login(ctx context.Context, phoneNumber, password string) (Session, error) {
	if phoneNumber == "" {
		return Session{}, &ValidationError{Field: "phone_number", Message: "Phone number is required."}
	}
	if password == "" {
		return Session{}, &ValidationError{Field: "password", Message: "Password is required."}
	}

	var resp struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	err := f.client.PostJSON(ctx, "/api/login", loginPayload{
		PhoneNumber: phoneNumber,
		Password:    password,
	}, &resp)
	if err != nil {
		if errors.Is(err, httpclient.ErrUnauthorized) {
			return Session{}, errors.New("Failed to login: Login failed: Unauthorized")
		}
		return Session{}, fmt.Errorf("Failed to login: Login failed: %w", err)
	}

	f.creds.Set(resp.Token)
	log.Info().Str("user_id", resp.UserID).Msg("Login succeeded")
	return Session{Token: resp.Token, UserID: resp.UserID}, nil
}

// Logout clears the stored credential. The server keeps its own session
// authority; there is no logout endpoint to call.
func (f *Flow) Logout() {
	f.creds.Clear()
}
