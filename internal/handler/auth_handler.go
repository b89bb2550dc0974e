package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/response"
	"appointment-booking-api/internal/store"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup registers a new account: POST /api/v1/auth/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Signup"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", chimw.GetReqID(r.Context())),
	)

	var req signupRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", slog.Any("err", err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if len(req.Password) < h.passwordMinLen {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(
			fmt.Sprintf("password must be at least %d characters", h.passwordMinLen)))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("err", err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		h.writeErr(w, r, err)
		return
	}

	log.Info("user registered", slog.String("user_id", u.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]string{"user_id": u.ID}))
}

// Signin exchanges credentials for an access token: POST /api/v1/auth/signin.
// Unknown email and wrong password produce the same answer so the endpoint
// cannot be used to enumerate accounts.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Signin"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", chimw.GetReqID(r.Context())),
	)

	var req signinRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", slog.Any("err", err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	u, err := h.store.UserByEmail(r.Context(), strings.ToLower(req.Email))
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		h.writeErr(w, r, err)
		return
	}
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid email or password"))
		return
	}

	tok, err := h.tokens.Issue(u.ID)
	if err != nil {
		log.Error("failed to issue token", slog.Any("err", err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("user signed in", slog.String("user_id", u.ID))
	render.JSON(w, r, response.OKWithData(map[string]string{
		"access_token": tok,
		"token_type":   "bearer",
	}))
}
