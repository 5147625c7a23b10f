package services

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/AnnaHort/phonebook-auth/internal/apperr"
	"github.com/AnnaHort/phonebook-auth/internal/domain"
	"github.com/AnnaHort/phonebook-auth/internal/dto"
	"github.com/AnnaHort/phonebook-auth/internal/helper"
	"github.com/AnnaHort/phonebook-auth/internal/helper/utils"
	"github.com/AnnaHort/phonebook-auth/internal/interfaces"
	"github.com/AnnaHort/phonebook-auth/internal/repository"
	"gorm.io/gorm"
)

const verificationTokenBytes = 32

type UserService interface {
	Register(input dto.RegisterRequest) (*domain.User, error)
	Login(input dto.UserLogin) (string, *domain.User, error)
	Logout(userID uint) error
	CurrentUser(userID uint) (*domain.User, error)
	VerifyByToken(token string) error
	ResendVerification(email string) error
	UpdateSubscription(userID uint, subscription string) (*domain.User, error)
	SetAvatarURL(userID uint, avatarURL string) (*domain.User, error)

	// AuthorizeToken resolves a bearer token to its user. The token must
	// both carry a valid signature and match the record's stored session
	// token, so older sessions die the moment a new one is issued.
	AuthorizeToken(tokenString string) (*domain.User, error)

	// IdentifyToken resolves a bearer token by signature alone, without
	// requiring an active session. Logout uses it so that ending an
	// already-ended session still succeeds.
	IdentifyToken(tokenString string) (*domain.User, error)
}

type userService struct {
	repo     repository.UserRepository
	auth     helper.Auth
	producer interfaces.ProducerHandler
}

func NewUserService(
	repo repository.UserRepository,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
) UserService {
	return &userService{
		repo:     repo,
		producer: producer,
		auth:     auth,
	}
}

func (u *userService) Register(input dto.RegisterRequest) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if email == "" || input.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	if _, err := u.repo.FindUserByEmail(email); err == nil {
		return nil, apperr.Conflict("Email in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}

	hashedPassword, err := u.auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	verifyToken, err := utils.RandomToken(verificationTokenBytes)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	newUser := &domain.User{
		Email:             email,
		PasswordHash:      hashedPassword,
		AvatarURL:         utils.GravatarURL(email),
		Subscription:      domain.SubscriptionStarter,
		VerificationToken: &verifyToken,
	}

	usr, err := u.repo.CreateUser(newUser)
	if err != nil {
		// concurrent registration races land here via the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email in use")
		}
		return nil, apperr.Internal(err)
	}

	// best effort: a lost mail never fails the registration
	if err := u.publishVerifyEmail(usr.ID, usr.Email, verifyToken); err != nil {
		log.Printf("publish verify email failed for %s: %v", usr.Email, err)
	}

	return usr, nil
}

func (u *userService) Login(input dto.UserLogin) (string, *domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password

	if email == "" || password == "" {
		return "", nil, apperr.Auth("Email or password is wrong")
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil {
		return "", nil, apperr.Auth("Email or password is wrong")
	}

	if !user.Verify {
		return "", nil, apperr.Auth("your account is not verified")
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", nil, apperr.Auth("Email or password is wrong")
	}

	tokenStr, err := u.auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}

	user.Token = &tokenStr
	if err := u.repo.SaveUser(user); err != nil {
		return "", nil, apperr.Internal(err)
	}

	return tokenStr, user, nil
}

func (u *userService) Logout(userID uint) error {
	user, err := u.repo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperr.Internal(err)
	}

	if user.Token == nil {
		return nil
	}

	user.Token = nil
	if err := u.repo.SaveUser(user); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (u *userService) CurrentUser(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, apperr.Auth("Not authorized")
	}

	user, err := u.repo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Auth("Not authorized")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (u *userService) VerifyByToken(token string) error {
	token = strings.TrimSpace(token)
	// older emailed links carried a stray leading colon
	token = strings.TrimPrefix(token, ":")
	if token == "" {
		return apperr.NotFound("Not found")
	}

	user, err := u.repo.FindUserByVerificationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Not found")
		}
		return apperr.Internal(err)
	}

	user.Verify = true
	user.VerificationToken = nil
	if err := u.repo.SaveUser(user); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (u *userService) ResendVerification(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return apperr.Validation("missing required field email")
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal(err)
	}

	if user.Verify {
		return apperr.Conflict("Verification has already been passed")
	}

	if user.VerificationToken == nil {
		return apperr.Internal(errors.New("unverified user has no verification token"))
	}

	// resend reuses the token issued at registration
	if err := u.publishVerifyEmail(user.ID, user.Email, *user.VerificationToken); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (u *userService) UpdateSubscription(userID uint, subscription string) (*domain.User, error) {
	subscription = strings.TrimSpace(strings.ToLower(subscription))
	switch subscription {
	case domain.SubscriptionStarter, domain.SubscriptionPro, domain.SubscriptionBusiness:
	default:
		return nil, apperr.Validation("subscription must be one of starter, pro, business")
	}

	user, err := u.repo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Auth("Not authorized")
		}
		return nil, apperr.Internal(err)
	}

	user.Subscription = subscription
	if err := u.repo.SaveUser(user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (u *userService) SetAvatarURL(userID uint, avatarURL string) (*domain.User, error) {
	if strings.TrimSpace(avatarURL) == "" {
		return nil, apperr.Validation("avatar URL is required")
	}

	user, err := u.repo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Auth("Not authorized")
		}
		return nil, apperr.Internal(err)
	}

	user.AvatarURL = avatarURL
	if err := u.repo.SaveUser(user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (u *userService) AuthorizeToken(tokenString string) (*domain.User, error) {
	claims, err := u.auth.VerifyToken(tokenString)
	if err != nil {
		return nil, apperr.Auth("Not authorized")
	}

	user, err := u.repo.FindUserByID(claims.UserID)
	if err != nil {
		return nil, apperr.Auth("Not authorized")
	}

	presented := helper.ExtractBearer(tokenString)
	if user.Token == nil || *user.Token != presented {
		return nil, apperr.Auth("Not authorized")
	}

	return user, nil
}

func (u *userService) IdentifyToken(tokenString string) (*domain.User, error) {
	claims, err := u.auth.VerifyToken(tokenString)
	if err != nil {
		return nil, apperr.Auth("Not authorized")
	}

	user, err := u.repo.FindUserByID(claims.UserID)
	if err != nil {
		return nil, apperr.Auth("Not authorized")
	}

	return user, nil
}

func (u *userService) publishVerifyEmail(userID uint, email, token string) error {
	if u.producer == nil {
		return errors.New("producer is not configured")
	}

	payload, err := json.Marshal(dto.VerifyEmailEvent{
		UserID: userID,
		Email:  email,
		Token:  token,
	})
	if err != nil {
		return err
	}

	return u.producer.PublishMessage([]byte(dto.EventVerifyEmail), payload)
}
