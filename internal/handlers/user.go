package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/middleware"
	"github.com/GregMSThompson/cost-tracker/internal/models"
	"github.com/GregMSThompson/cost-tracker/internal/response"
)

type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResult, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResult, error)
	Me(ctx context.Context, uid string) (*models.User, error)
	UpdateProfile(ctx context.Context, uid string, req dto.UpdateProfileRequest) (*models.User, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

// AuthRoutes serves register, login and logout publicly and guards the rest
// with requireAuth.
func (h *userHandlers) AuthRoutes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/me", h.Me)
		r.Put("/profile", h.UpdateProfile)
		r.Post("/update-profile", h.UpdateProfile)
	})
	return r
}

func (h *userHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	res, err := h.UserSvc.Register(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	setAuthCookie(w, res.Token)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, res)
}

func (h *userHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	res, err := h.UserSvc.Login(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	setAuthCookie(w, res.Token)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *userHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *userHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserSvc.Me(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}

func (h *userHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	user, err := h.UserSvc.UpdateProfile(r.Context(), middleware.UID(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
