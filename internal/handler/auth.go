package handler

import (
	"net/http"
)

type signupRequest struct {
	FullName        string `validate:"required" json:"full_name"`
	Email           string `validate:"required" json:"email_address"`
	Password        string `validate:"required" json:"password"`
	ConfirmPassword string `validate:"required" json:"confirm_password"`
}

type loginRequest struct {
	Email    string `validate:"required" json:"email"`
	Password string `validate:"required" json:"password"`
}

type updatePasswordRequest struct {
	Email           string `validate:"required" json:"email"`
	Password        string `validate:"required" json:"password"`
	ConfirmPassword string `validate:"required" json:"confirm_password"`
}

type forgotPasswordRequest struct {
	Email string `validate:"required" json:"email_address"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Signup(r.Context(), body.FullName, body.Email, body.Password, body.ConfirmPassword)
	if err != nil {
		writeError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "Verification link sent to your email address", map[string]string{
		"full_name":       result.FullName,
		"email_address":   result.Email,
		"hashed_password": result.HashedPassword,
	})
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	suppliedEmail := r.URL.Query().Get("email")
	if token == "" || suppliedEmail == "" {
		writeEnvelope(w, http.StatusBadRequest, "Missing token or email", nil)
		return
	}

	email, err := h.auth.VerifyEmail(r.Context(), token, suppliedEmail)
	if err != nil {
		writeError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "Email verified successfully", map[string]string{"email": email})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	accessToken, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "Login successful", map[string]string{"access_token": accessToken})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body forgotPasswordRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), body.Email); err != nil {
		writeError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "Password reset link sent to your email address", nil)
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var body updatePasswordRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	if err := h.auth.UpdatePassword(r.Context(), body.Email, body.Password, body.ConfirmPassword); err != nil {
		writeError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "Password updated successfully", nil)
}
