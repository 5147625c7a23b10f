package handlers

import (
	"strings"

	"github.com/AnnaHort/phonebook-auth/internal/apperr"
	"github.com/AnnaHort/phonebook-auth/internal/dto"
	"github.com/AnnaHort/phonebook-auth/internal/helper/utils"
	"github.com/AnnaHort/phonebook-auth/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc      services.UserService
	validate *validator.Validate
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *UserHandler) SetupRoutes(app *fiber.App, authMW, identityMW fiber.Handler) {
	users := app.Group("/users")

	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
	users.Get("/verify/:verificationToken", h.VerifyEmail)
	users.Post("/verify", h.ResendVerification)

	users.Post("/logout", identityMW, h.Logout)
	users.Post("/current", authMW, h.Current)
	users.Patch("/subscription", authMW, h.UpdateSubscription)
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if msg, ok := h.validationMessage(requestBody); !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msg)
	}

	user, err := h.svc.Register(requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": dto.UserResponse{
			Email:        user.Email,
			Subscription: user.Subscription,
			AvatarURL:    user.AvatarURL,
		},
	})
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}
	if msg, ok := h.validationMessage(requestBody); !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msg)
	}

	token, user, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			Email:        user.Email,
			Subscription: user.Subscription,
		},
	})
}

func (h *UserHandler) Logout(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authorized")
	}

	if err := h.svc.Logout(userID); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) Current(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authorized")
	}

	user, err := h.svc.CurrentUser(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"email":        user.Email,
		"subscription": user.Subscription,
	})
}

func (h *UserHandler) VerifyEmail(ctx *fiber.Ctx) error {
	token := ctx.Params("verificationToken")

	if err := h.svc.VerifyByToken(token); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Email confirm successfully")
}

func (h *UserHandler) ResendVerification(ctx *fiber.Ctx) error {
	var requestBody dto.ResendVerifyRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "missing required field email")
	}
	if msg, ok := h.validationMessage(requestBody); !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msg)
	}

	if err := h.svc.ResendVerification(requestBody.Email); err != nil {
		// already-verified is a conflict but this route reports it as 400
		if apperr.KindOf(err) == apperr.KindConflict {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
		}
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Verification email sent")
}

func (h *UserHandler) UpdateSubscription(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authorized")
	}

	var requestBody dto.UpdateSubscriptionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if msg, ok := h.validationMessage(requestBody); !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msg)
	}

	user, err := h.svc.UpdateSubscription(userID, requestBody.Subscription)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.UserResponse{
		Email:        user.Email,
		Subscription: user.Subscription,
		AvatarURL:    user.AvatarURL,
	})
}

// validationMessage runs the struct validator and flattens field errors
// into one user-facing message.
func (h *UserHandler) validationMessage(v interface{}) (string, bool) {
	err := h.validate.Struct(v)
	if err == nil {
		return "", true
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Please provide valid inputs", false
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email")
		case "oneof":
			msgs = append(msgs, fe.Field()+" must be one of "+fe.Param())
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return "Validation Error: " + strings.Join(msgs, ", "), false
}
