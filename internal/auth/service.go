// Package auth handles login, registration, logout and password reset, and
// moves the visitor's session accordingly.
package auth

import (
	"context"
	"strings"

	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/session"
	"github.com/vegruit/storefront/internal/validate"
)

// Gateway is the part of the backend client auth needs.
type Gateway interface {
	Login(ctx context.Context, creds backend.Credentials) backend.Result[backend.AuthResponse]
	RegisterBuyer(ctx context.Context, reg backend.Registration) backend.Result[backend.AuthResponse]
	RegisterSeller(ctx context.Context, reg backend.Registration) backend.Result[backend.AuthResponse]
	RequestPasswordReset(ctx context.Context, email string) backend.Result[struct{}]
	ResetPassword(ctx context.Context, resetToken, password string) backend.Result[struct{}]
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

func (in LoginInput) validate() error {
	return validate.First(
		validate.Required(
			validate.Field{Name: "email", Value: in.Email},
			validate.Field{Name: "password", Value: in.Password},
		),
		validate.Email(in.Email),
	)
}

type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Address         string `json:"address"`
	City            string `json:"city"`
	FarmName        string `json:"farmName"`
	FarmLocation    string `json:"farmLocation"`
}

func (in RegisterInput) validate(role session.UserType) error {
	fields := []validate.Field{
		{Name: "name", Value: in.Name},
		{Name: "email", Value: in.Email},
		{Name: "phone", Value: in.Phone},
		{Name: "password", Value: in.Password},
	}
	if role == session.Seller {
		fields = append(fields,
			validate.Field{Name: "farm name", Value: in.FarmName},
			validate.Field{Name: "farm location", Value: in.FarmLocation},
		)
	}
	return validate.First(
		validate.Required(fields...),
		validate.Email(in.Email),
		validate.Phone(in.Phone),
		validate.Password(in.Password),
		validate.PasswordsMatch(in.Password, in.ConfirmPassword),
	)
}

func (in RegisterInput) registration() backend.Registration {
	return backend.Registration{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Password:     in.Password,
		Address:      strings.TrimSpace(in.Address),
		City:         strings.TrimSpace(in.City),
		FarmName:     strings.TrimSpace(in.FarmName),
		FarmLocation: strings.TrimSpace(in.FarmLocation),
	}
}

type ResetInput struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ProfileFromUser converts the backend's user record.
func ProfileFromUser(u backend.User) session.Profile {
	return session.Profile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Address:      u.Address,
		City:         u.City,
		FarmName:     u.FarmName,
		FarmLocation: u.FarmLocation,
		UserType:     u.UserType,
	}
}

type Service struct {
	gateway Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gateway: gw}
}

// Login authenticates and, only on success, establishes the session.
func (s *Service) Login(ctx context.Context, m *session.Manager, in LoginInput) backend.Result[session.Session] {
	if err := in.validate(); err != nil {
		return backend.Invalid[session.Session](err.Error())
	}
	res := s.gateway.Login(ctx, backend.Credentials{
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		UserType: strings.ToLower(strings.TrimSpace(in.UserType)),
	})
	return s.establish(ctx, m, res, session.ParseUserType(in.UserType), "Login successful")
}

func (s *Service) Register(ctx context.Context, m *session.Manager, role session.UserType, in RegisterInput) backend.Result[session.Session] {
	if err := in.validate(role); err != nil {
		return backend.Invalid[session.Session](err.Error())
	}
	var res backend.Result[backend.AuthResponse]
	if role == session.Seller {
		res = s.gateway.RegisterSeller(ctx, in.registration())
	} else {
		res = s.gateway.RegisterBuyer(ctx, in.registration())
	}
	return s.establish(ctx, m, res, role, "Registration successful")
}

func (s *Service) establish(ctx context.Context, m *session.Manager, res backend.Result[backend.AuthResponse], fallback session.UserType, okMessage string) backend.Result[session.Session] {
	if !res.OK() {
		return backend.Fail[session.Session](res.Err)
	}
	userType := session.ParseUserType(res.Data.UserType)
	if userType == "" {
		userType = session.ParseUserType(res.Data.User.UserType)
	}
	if userType == "" {
		userType = fallback
	}
	m.Establish(ctx, ProfileFromUser(res.Data.User), res.Data.Token, userType)

	msg := res.Message
	if msg == "" {
		msg = okMessage
	}
	return backend.Ok(m.Current(), msg)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) backend.Result[struct{}] {
	if err := validate.First(
		validate.Required(validate.Field{Name: "email", Value: email}),
		validate.Email(email),
	); err != nil {
		return backend.Invalid[struct{}](err.Error())
	}
	res := s.gateway.RequestPasswordReset(ctx, strings.TrimSpace(email))
	if res.OK() && res.Message == "" {
		res.Message = "If that email is registered, a reset link is on its way"
	}
	return res
}

func (s *Service) ResetPassword(ctx context.Context, in ResetInput) backend.Result[struct{}] {
	if err := validate.First(
		validate.Required(
			validate.Field{Name: "reset token", Value: in.Token},
			validate.Field{Name: "password", Value: in.Password},
		),
		validate.Password(in.Password),
		validate.PasswordsMatch(in.Password, in.ConfirmPassword),
	); err != nil {
		return backend.Invalid[struct{}](err.Error())
	}
	res := s.gateway.ResetPassword(ctx, in.Token, in.Password)
	if res.OK() && res.Message == "" {
		res.Message = "Password updated. You can now log in"
	}
	return res
}
