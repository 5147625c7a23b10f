package handlers

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnnaHort/phonebook-auth/internal/helper/utils"
	"github.com/AnnaHort/phonebook-auth/internal/interfaces"
	"github.com/AnnaHort/phonebook-auth/internal/services"
	pkgutils "github.com/AnnaHort/phonebook-auth/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const maxAvatarSize = 5 * 1024 * 1024 // 5MB

type AvatarHandler struct {
	svc      services.UserService
	uploader interfaces.Uploader
}

func NewAvatarHandler(svc services.UserService, uploader interfaces.Uploader) *AvatarHandler {
	return &AvatarHandler{svc: svc, uploader: uploader}
}

func (h *AvatarHandler) SetupRoutes(app *fiber.App, authMW fiber.Handler) {
	app.Patch("/users/avatars", authMW, h.UploadAvatar)
}

// PATCH /users/avatars
// form-data: file=<image>
func (h *AvatarHandler) UploadAvatar(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authorized")
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	if !allowed[ext] {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "only jpg/jpeg/png/webp allowed")
	}
	if file.Size > maxAvatarSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	b, err := pkgutils.ReadAllLimit(f, maxAvatarSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	upCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	url, err := h.uploader.UploadBytes(upCtx, "phonebook/avatars", file.Filename, b)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "avatar upload failed")
	}

	user, err := h.svc.SetAvatarURL(userID, url)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"avatarURL": user.AvatarURL,
	})
}
