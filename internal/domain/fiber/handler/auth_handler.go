package handler

import (
	"github.com/fadilmartias/careers-portal/internal/dto"
	"github.com/fadilmartias/careers-portal/internal/middleware"
	"github.com/fadilmartias/careers-portal/internal/service"
	"github.com/fadilmartias/careers-portal/internal/usecase"
	"github.com/fadilmartias/careers-portal/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth service.AuthServiceInterface
}

func NewAuthHandler(auth service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/auth")
	g.Post("/signin", h.SignIn)
	g.Post("/signup", h.SignUp)
	g.Post("/signout", h.SignOut)
	g.Get("/me", h.Me)
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if req.Email == "" || req.Password == "" {
		return util.FormErrorResponse(c, util.NewFormError("email and password are required", nil))
	}
	session, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success sign in",
		Data:    session,
	})
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	errs := map[string]string{}
	if req.Email == "" {
		errs["email"] = "Email is required"
	}
	if len(req.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if len(errs) > 0 {
		return util.FormErrorResponse(c, util.NewFormError("invalid sign up request", errs))
	}
	session, user, err := h.auth.SignUp(c.UserContext(), service.SignUpRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	message := "Success sign up"
	if session == nil {
		message = "Check your email to confirm your account"
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: message,
		Data:    fiber.Map{"session": session, "user": user},
	})
}

func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	token := middleware.BearerToken(c)
	if token == "" {
		return errorResponse(c, usecase.ErrUnauthorized)
	}
	if err := h.auth.SignOut(c.UserContext(), token); err != nil {
		return errorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success sign out",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return errorResponse(c, usecase.ErrUnauthorized)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get current user",
		Data:    user,
	})
}
