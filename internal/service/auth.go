package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/yogeshrakate/skill-matrix-backend/internal/crypto"
	"github.com/yogeshrakate/skill-matrix-backend/internal/domain"
	internal_errors "github.com/yogeshrakate/skill-matrix-backend/internal/errors"
	"github.com/yogeshrakate/skill-matrix-backend/internal/logger"
	"github.com/yogeshrakate/skill-matrix-backend/internal/mailer"
	"github.com/yogeshrakate/skill-matrix-backend/internal/password"
)

type AuthService interface {
	Signup(ctx context.Context, fullName, email, pass, confirm string) (SignupResult, error)
	VerifyEmail(ctx context.Context, linkToken, suppliedEmail string) (domain.Email, error)
	Login(ctx context.Context, email, pass string) (string, error)
	ForgotPassword(ctx context.Context, email domain.Email) error
	UpdatePassword(ctx context.Context, email domain.Email, pass, confirm string) error
}

// AuthStorage is the persistence collaborator. SaveUser surfaces a unique
// violation on the email column as a DuplicateEmail error; lookups by missing
// email come back as not-found.
type AuthStorage interface {
	SaveUser(ctx context.Context, user domain.User) (domain.User, error)
	UserByEmail(ctx context.Context, email domain.Email) (domain.User, error)
	ActivateUser(ctx context.Context, email domain.Email) error
	UpdatePassword(ctx context.Context, email domain.Email, passHash string) error
}

// Notifier renders and delivers a verification or reset link.
type Notifier interface {
	SendLink(email string, purpose domain.Purpose) error
}

// LinkDecrypter opens emailed link tokens.
type LinkDecrypter interface {
	DecryptLink(token string) (crypto.LinkPayload, error)
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(claims map[string]any) (string, error)
}

// Auth owns the user activation state machine: Pending (just registered,
// inactive) -> Active (email verified). All credential writes go through the
// password codec; plaintext never reaches storage.
type Auth struct {
	storage  AuthStorage
	notifier Notifier
	links    LinkDecrypter
	tokens   TokenIssuer
}

func NewAuth(storage AuthStorage, notifier Notifier, links LinkDecrypter, tokens TokenIssuer) *Auth {
	return &Auth{
		storage:  storage,
		notifier: notifier,
		links:    links,
		tokens:   tokens,
	}
}

// SignupResult echoes the persisted profile fields. The plaintext password is
// never part of it.
type SignupResult struct {
	FullName       string
	Email          domain.Email
	HashedPassword string
}

// Signup persists a Pending user and emails a verification link. The user row
// commits before the email goes out; a dispatch failure fails the request but
// leaves the row in place, so re-requesting verification stays possible.
func (a *Auth) Signup(ctx context.Context, fullName, email, pass, confirm string) (SignupResult, error) {
	email = normalizeEmail(email)

	if err := mailer.ValidateAddress(email); err != nil {
		return SignupResult{}, err
	}

	passHash, err := password.Hash(pass, confirm)
	if err != nil {
		return SignupResult{}, errPasswordMismatch()
	}

	user := domain.User{
		Id:       uuid.NewString(),
		FullName: fullName,
		Email:    email,
		PassHash: passHash,
		Active:   false,
	}
	if _, err := a.storage.SaveUser(ctx, user); err != nil {
		return SignupResult{}, err
	}

	if err := a.notifier.SendLink(email, domain.PurposeVerify); err != nil {
		logger.Log.Error("verification email dispatch failed", "email", email, "error", err)
		return SignupResult{}, errMailDispatchFailed()
	}

	return SignupResult{FullName: fullName, Email: email, HashedPassword: passHash}, nil
}

// VerifyEmail opens the link token and compares the embedded email to the
// caller-supplied one. Activation happens only for verify-purpose links;
// a reset link never flips the active flag. Re-verifying an already active
// user is a no-op that still succeeds.
func (a *Auth) VerifyEmail(ctx context.Context, linkToken, suppliedEmail string) (domain.Email, error) {
	payload, err := a.links.DecryptLink(linkToken)
	if err != nil {
		return "", &internal_errors.ErrorWithStatusCode{
			Message:    "Link is invalid or has been tampered with",
			StatusCode: http.StatusBadRequest,
			Code:       internal_errors.CodeInvalidOrTamperedLink,
		}
	}

	if payload.Email != normalizeEmail(suppliedEmail) {
		return "", &internal_errors.ErrorWithStatusCode{
			Message:    "Verification failed",
			StatusCode: http.StatusBadRequest,
			Code:       internal_errors.CodeVerificationFailed,
		}
	}

	if payload.Purpose == domain.PurposeVerify {
		if err := a.storage.ActivateUser(ctx, payload.Email); err != nil {
			if internal_errors.IsNotFound(err) {
				return "", errUnknownEmail()
			}
			return "", err
		}
	}

	return payload.Email, nil
}

// Login verifies the credentials and issues a session token embedding the
// email. Inactive accounts are rejected after password verification, so
// probing an inactive account costs the same as probing an active one.
func (a *Auth) Login(ctx context.Context, email, pass string) (string, error) {
	email = normalizeEmail(email)

	user, err := a.storage.UserByEmail(ctx, email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", &internal_errors.ErrorWithStatusCode{
				Message:    "Login failed, email doesn't exist",
				StatusCode: http.StatusBadRequest,
				Code:       internal_errors.CodeUnknownEmail,
			}
		}
		return "", err
	}

	if !password.Verify(pass, user.PassHash) {
		return "", &internal_errors.ErrorWithStatusCode{
			Message:    "Login failed, incorrect password",
			StatusCode: http.StatusBadRequest,
			Code:       internal_errors.CodeIncorrectPassword,
		}
	}

	if !user.Active {
		return "", &internal_errors.ErrorWithStatusCode{
			Message:    "Account email is not verified yet",
			StatusCode: http.StatusBadRequest,
			Code:       internal_errors.CodeAccountNotVerified,
		}
	}

	accessToken, err := a.tokens.Issue(map[string]any{"email": user.Email})
	if err != nil {
		logger.Log.Error("failed to issue session token", "email", email, "error", err)
		return "", err
	}

	return accessToken, nil
}

// ForgotPassword dispatches a reset link unconditionally. No existence check
// happens here, so the endpoint does not leak which emails have accounts.
func (a *Auth) ForgotPassword(ctx context.Context, email domain.Email) error {
	email = normalizeEmail(email)

	if err := mailer.ValidateAddress(email); err != nil {
		return err
	}

	if err := a.notifier.SendLink(email, domain.PurposeReset); err != nil {
		logger.Log.Error("reset email dispatch failed", "email", email, "error", err)
		return errMailDispatchFailed()
	}
	return nil
}

// UpdatePassword replaces the stored credential with the hash of the new
// password. Only the hashed form is ever written.
func (a *Auth) UpdatePassword(ctx context.Context, email domain.Email, pass, confirm string) error {
	email = normalizeEmail(email)

	passHash, err := password.Hash(pass, confirm)
	if err != nil {
		return errPasswordMismatch()
	}

	if _, err := a.storage.UserByEmail(ctx, email); err != nil {
		if internal_errors.IsNotFound(err) {
			return errUnknownEmail()
		}
		return err
	}

	return a.storage.UpdatePassword(ctx, email, passHash)
}

func normalizeEmail(email string) domain.Email {
	return strings.ToLower(strings.TrimSpace(email))
}

func errPasswordMismatch() error {
	return &internal_errors.ErrorWithStatusCode{
		Message:    "Password and Confirm Password doesn't match",
		StatusCode: http.StatusBadRequest,
		Code:       internal_errors.CodePasswordMismatch,
	}
}

func errUnknownEmail() error {
	return &internal_errors.ErrorWithStatusCode{
		Message:    "Email doesn't exist",
		StatusCode: http.StatusBadRequest,
		Code:       internal_errors.CodeUnknownEmail,
	}
}

func errMailDispatchFailed() error {
	return &internal_errors.ErrorWithStatusCode{
		Message:    "Failed to send email",
		StatusCode: http.StatusBadRequest,
		Code:       internal_errors.CodeMailDispatchFailed,
	}
}
