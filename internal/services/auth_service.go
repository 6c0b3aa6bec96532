package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"reachiq/internal/auth"
	"reachiq/internal/dto"
	"reachiq/internal/logger"
	"reachiq/internal/mailer"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/pkg/apperrors"
)

const otpTTL = 10 * time.Minute

type AuthService interface {
	// Signup creates the account unverified and emails a six digit code;
	// the session token is handed out by VerifySignup.
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	VerifySignup(ctx context.Context, req *dto.VerifySignupRequest) (*dto.AuthResponse, error)
	ResendSignupOtp(ctx context.Context, req *dto.ResendOtpRequest) error
	Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type SystemMailSender interface {
	Send(to, subject, body string) error
}

type authService struct {
	users repositories.UserRepository
	otps  repositories.OtpRepository
	mail  SystemMailSender
}

func NewAuthService(users repositories.UserRepository, otps repositories.OtpRepository, mail SystemMailSender) AuthService {
	return &authService{users: users, otps: otps, mail: mail}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return nil, apperrors.New(apperrors.CodeAlreadyExists, "auth",
			"Email already registered", http.StatusConflict)
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Phone:    req.Phone,
		Role:     models.UserRoleUser,
	}
	if err := s.users.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.issueOtp(ctx, user.Email, models.OtpTypeSignup,
		"Confirm your email", "Your signup confirmation code is"); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)
	return &dto.SignupResponse{
		Message: "Account created. Check your email for the confirmation code.",
		Email:   user.Email,
	}, nil
}

func (s *authService) VerifySignup(ctx context.Context, req *dto.VerifySignupRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewBadRequestError("Invalid or expired code")
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.Verified {
		if err := s.redeemOtp(ctx, req.Email, models.OtpTypeSignup, req.Code); err != nil {
			return nil, err
		}
		user.Verified = true
		if err := s.users.Update(user); err != nil {
			return nil, apperrors.InternalError(err)
		}
		logger.CtxInfo(ctx, "signup verified", "user_id", user.ID)
	}

	return s.authResponse(user)
}

func (s *authService) ResendSignupOtp(ctx context.Context, req *dto.ResendOtpRequest) error {
	// Identical response whether the email exists, is verified, or is
	// still pending; only a pending account gets a fresh code.
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	if user.Verified {
		return nil
	}

	return s.issueOtp(ctx, user.Email, models.OtpTypeSignup,
		"Confirm your email", "Your signup confirmation code is")
}

func (s *authService) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	if !user.Verified {
		return nil, apperrors.New(apperrors.CodeForbidden, "auth",
			"Email not verified. Check your inbox for the confirmation code.", http.StatusForbidden)
	}

	return s.authResponse(user)
}

func (s *authService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Phone:    user.Phone,
			Role:     string(user.Role),
		},
	}, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	// Whether the email exists or not, the response is identical; only an
	// existing account actually gets a code.
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	return s.issueOtp(ctx, user.Email, models.OtpTypePasswordReset,
		"Password reset code", "Your password reset code is")
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	if err := s.redeemOtp(ctx, req.Email, models.OtpTypePasswordReset, req.Code); err != nil {
		return err
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.users.UpdatePassword(req.Email, hashed); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewBadRequestError("Invalid or expired code")
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "password reset", "email", req.Email)
	return nil
}

// issueOtp stores a fresh code for the email and mails it.
func (s *authService) issueOtp(ctx context.Context, email string, otpType models.OtpType, subject, caption string) error {
	code, err := generateOtpCode()
	if err != nil {
		return apperrors.InternalError(err)
	}

	otp := &models.Otp{
		Email:     email,
		Code:      code,
		Type:      otpType,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := s.otps.Create(otp); err != nil {
		return apperrors.InternalError(err)
	}

	body := fmt.Sprintf(
		"<p>%s <b>%s</b>.</p><p>It expires in 10 minutes.</p>",
		caption, code,
	)
	if err := s.mail.Send(email, subject, body); err != nil {
		logger.CtxWithError(ctx, "failed to send otp email", err, "email", email)
		return apperrors.InternalError(err)
	}

	return nil
}

// redeemOtp checks the latest code of the given type and burns it. Every
// failure mode reports the same generic message.
func (s *authService) redeemOtp(ctx context.Context, email string, otpType models.OtpType, code string) error {
	otp, err := s.otps.FindLatest(email, otpType)
	if err != nil {
		if errors.Is(err, repositories.ErrOtpNotFound) {
			return apperrors.NewBadRequestError("Invalid or expired code")
		}
		return apperrors.InternalError(err)
	}

	if !otp.Valid(time.Now()) {
		return apperrors.NewBadRequestError("Invalid or expired code")
	}

	if otp.Code != code {
		if err := s.otps.IncrementAttempts(otp.ID); err != nil {
			logger.CtxWithError(ctx, "failed to count otp attempt", err, "otp_id", otp.ID)
		}
		return apperrors.NewBadRequestError("Invalid or expired code")
	}

	if err := s.otps.MarkUsed(otp.ID); err != nil {
		logger.CtxWithError(ctx, "failed to mark otp used", err, "otp_id", otp.ID)
	}
	return nil
}

func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

var _ SystemMailSender = (*mailer.SystemMailer)(nil)
