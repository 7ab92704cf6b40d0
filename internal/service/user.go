// Package service contains the business logic layer: validation, uniqueness
// rules, credential checks and vote transitions.
//
// Services return apperror values; the handler layer maps them to HTTP.
// Each service owns one store and is wired once in server.setupRoutes —
// there is no package-level state.
package service

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/tirgei/questioner/internal/apperror"
	"github.com/tirgei/questioner/internal/auth"
	"github.com/tirgei/questioner/internal/model"
	"github.com/tirgei/questioner/internal/store"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	msgInvalidData   = "Invalid data. Please fill all required fields"
	msgNoData        = "No data provided"
	msgFieldRequired = "This field is required"
)

// emailPattern is a deliberately permissive format check: something@domain.tld.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Othername   string `json:"othername"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phonenumber"`
}

// LoginInput is the payload accepted by Login.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult bundles the stored user with the freshly minted token pair so
// the handler can build the whole response in one step.
type AuthResult struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}

// UserService handles registration, login and the token lifecycle.
type UserService struct {
	users     *store.Store[*model.User]
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	ledger    *auth.RevocationList
	logger    *slog.Logger
}

// NewUserService creates a UserService. All dependencies are injected; the
// caller (server wiring) decides which store and token secret to use.
func NewUserService(
	users *store.Store[*model.User],
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	ledger *auth.RevocationList,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		ledger:    ledger,
		logger:    logger,
	}
}

// Register validates the input, enforces username/email uniqueness and
// persists the new account with a hashed password.
//
// Validation aggregates every violated field into one error rather than
// failing on the first. Uniqueness is checked username first, then email —
// a request violating both reports the username conflict.
//
// On success the returned AuthResult carries a fresh access token and a
// refresh token bound to the new user's id.
func (s *UserService) Register(input RegisterInput) (*AuthResult, error) {
	if (input == RegisterInput{}) {
		return nil, apperror.Validation(msgNoData, nil)
	}

	if err := validateRegister(input); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if s.users.Exists(func(u *model.User) bool { return u.Username == username }) {
		return nil, apperror.Conflict("Username already exists")
	}
	if s.users.Exists(func(u *model.User) bool { return u.Email == email }) {
		return nil, apperror.Conflict("Email already exists")
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, apperror.ValidationField("password", err.Error())
	}

	user := s.users.Save(&model.User{
		Firstname:    strings.TrimSpace(input.Firstname),
		Lastname:     strings.TrimSpace(input.Lastname),
		Othername:    strings.TrimSpace(input.Othername),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
	})

	s.logger.Info("user registered",
		slog.Int("userID", user.ID),
		slog.String("username", user.Username),
	)

	return s.issueTokens(user)
}

// Login authenticates a username/password pair.
//
// An unknown username fails with NotFound ("User not found"); a wrong
// password fails with Unauthorized. On success a fresh token pair is
// minted, same as registration.
func (s *UserService) Login(input LoginInput) (*AuthResult, error) {
	if (input == LoginInput{}) {
		return nil, apperror.Validation(msgNoData, nil)
	}

	fields := map[string][]string{}
	if strings.TrimSpace(input.Username) == "" {
		fields["username"] = append(fields["username"], msgFieldRequired)
	}
	if input.Password == "" {
		fields["password"] = append(fields["password"], msgFieldRequired)
	}
	if len(fields) > 0 {
		return nil, apperror.Validation(msgInvalidData, fields)
	}

	username := strings.TrimSpace(input.Username)
	user, err := s.users.Find(func(u *model.User) bool { return u.Username == username })
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}

	if err := s.passwords.Verify(user.PasswordHash, input.Password); err != nil {
		s.logger.Warn("failed login attempt", slog.String("username", username))
		return nil, err
	}

	s.logger.Info("user logged in", slog.Int("userID", user.ID))

	return s.issueTokens(user)
}

// Refresh mints a new access token for the identity carried by a validated
// refresh token. The new token is not fresh: it proves possession of the
// refresh token, not of the password.
func (s *UserService) Refresh(userID int) (string, error) {
	return s.tokens.GenerateAccess(userID, false)
}

// Logout revokes the jti of the presented access token. Idempotent.
func (s *UserService) Logout(jti string) {
	s.ledger.Revoke(jti)
	s.logger.Info("token revoked", slog.String("jti", jti))
}

// FindByID returns the user with the given id.
func (s *UserService) FindByID(id int) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (s *UserService) issueTokens(user *model.User) (*AuthResult, error) {
	access, err := s.tokens.GenerateAccess(user.ID, true)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// validateRegister checks presence and format of every registration field
// and aggregates all violations into a single Validation error.
func validateRegister(input RegisterInput) error {
	fields := map[string][]string{}

	required := []struct {
		name, value string
	}{
		{"firstname", input.Firstname},
		{"lastname", input.Lastname},
		{"username", input.Username},
		{"email", input.Email},
		{"password", input.Password},
		{"phonenumber", input.PhoneNumber},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields[f.name] = append(fields[f.name], msgFieldRequired)
		}
	}

	if email := strings.TrimSpace(input.Email); email != "" && !emailPattern.MatchString(email) {
		fields["email"] = append(fields["email"], "Invalid email format")
	}

	if input.Password != "" {
		if msg, ok := passwordWeakness(input.Password); ok {
			fields["password"] = append(fields["password"], msg)
		}
	}

	if len(fields) > 0 {
		return apperror.Validation(msgInvalidData, fields)
	}
	return nil
}

// passwordWeakness reports why a password fails the complexity policy:
// minimum length plus at least one uppercase, lowercase, digit and special
// character.
func passwordWeakness(password string) (string, bool) {
	if len(password) < MinPasswordLength {
		return "Password must be at least 8 characters long", true
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}

	if !upper || !lower || !digit || !special {
		return "Password must contain an uppercase letter, a lowercase letter, a digit and a special character", true
	}
	return "", false
}
