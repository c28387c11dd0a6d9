package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"getset/cmd/identity"
	"getset/cmd/internal/validate"
	"getset/cmd/security/password"
	"getset/cmd/security/token"
)

// Service implements the high-level auth operations.
//
// Hashing and signing are CPU-bound and run on the request goroutine; they
// never serialize unrelated requests. The account store is the only shared
// state, so concurrent login/logout on one account resolves last-writer-wins
// (benign: the client that acted last holds the cookie that matters).
type Service struct {
	log    *slog.Logger
	store  identity.Store
	hasher password.Config
	tokens *token.Manager

	// dummy credential for timing-resistant login when the email is unknown.
	dummy password.Credential
}

// Issued is the result of a successful login.
type Issued struct {
	AccessToken  string
	AccessExp    time.Time
	RefreshToken string
	RefreshExp   time.Time
}

// NewService constructs a Service.
func NewService(log *slog.Logger, store identity.Store, hasher password.Config, tokens *token.Manager) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{log: log, store: store, hasher: hasher, tokens: tokens}

	if cred, err := hasher.Hash("dummy-password-for-timing-only"); err == nil {
		s.dummy = cred
	}
	return s
}

// RegisterInput is a registration request.
type RegisterInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
}

// Register validates the input, derives a credential and creates the
// account. Every field violation is reported, not just the first.
// The uniqueness race between any pre-check and the insert is closed by the
// store's unique constraint, so no pre-check is performed here.
func (s *Service) Register(ctx context.Context, in RegisterInput) (identity.Account, error) {
	res := validate.Run([]validate.Field{
		{Value: in.Name, Name: "name", Valid: validate.Name,
			Message: "Name can only contain letters, spaces, apostrophes, and hyphens."},
		{Value: in.Email, Name: "email", Valid: validate.Email,
			Message: "Please enter a valid email address (e.g., user@example.com)."},
		{Value: in.PhoneNumber, Name: "phoneNumber", Valid: validate.Phone,
			Message: "Phone number must be 10 digits long and start with 97 or 98."},
		{Value: in.Password, Name: "password", Valid: validate.Password,
			Message: "Password must be at least 8 characters long for security reasons."},
	})
	if !res.OK {
		return identity.Account{}, &ValidationError{Violations: res.Errors}
	}

	cred, err := s.hasher.Hash(in.Password)
	if err != nil {
		return identity.Account{}, err
	}

	account, err := s.store.CreateAccount(ctx, identity.CreateAccountInput{
		Name:         in.Name,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: cred.Hash,
		PasswordSalt: cred.Salt,
	})
	if err != nil {
		if identity.IsConflict(err) {
			return identity.Account{}, ErrEmailTaken
		}
		return identity.Account{}, err
	}

	s.log.Info("auth.register.success", "account_id", account.ID)
	return account, nil
}

// Login authenticates email+password and issues a fresh token pair. The new
// refresh token replaces any previously stored one: a second login
// invalidates the first session's refresh token.
func (s *Service) Login(ctx context.Context, email, passwordPlain string, now time.Time) (identity.Account, Issued, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if identity.IsNotFound(err) {
			// Timing resistance: burn a verify even when the email is unknown.
			_, _ = s.hasher.Verify(passwordPlain, s.dummy.Hash, s.dummy.Salt)
			return identity.Account{}, Issued{}, ErrInvalidCredentials
		}
		return identity.Account{}, Issued{}, err
	}

	ok, err := s.hasher.Verify(passwordPlain, account.PasswordHash, account.PasswordSalt)
	if err != nil || !ok {
		return identity.Account{}, Issued{}, ErrInvalidCredentials
	}

	sub := token.Subject{ID: account.ID, Name: account.Name, Email: account.Email}

	accessToken, accessExp, err := s.tokens.IssueAccess(sub, now)
	if err != nil {
		return identity.Account{}, Issued{}, err
	}
	refreshToken, refreshExp, err := s.tokens.IssueRefresh(sub, now)
	if err != nil {
		return identity.Account{}, Issued{}, err
	}

	if err := s.store.SetRefreshToken(ctx, account.ID, token.HashSHA256Hex(refreshToken), now); err != nil {
		return identity.Account{}, Issued{}, err
	}

	s.log.Info("auth.login.success", "account_id", account.ID)
	return account, Issued{
		AccessToken:  accessToken,
		AccessExp:    accessExp,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
	}, nil
}

// Logout revokes the stored refresh token. Idempotent: logging out twice,
// or after the account vanished, is not an error.
func (s *Service) Logout(ctx context.Context, accountID string, now time.Time) error {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if err := s.store.ClearRefreshToken(ctx, accountID, now); err != nil {
		if identity.IsNotFound(err) {
			return nil
		}
		return err
	}
	s.log.Info("auth.logout.success", "account_id", accountID)
	return nil
}

// Refresh verifies a presented refresh token and issues a new access token.
//
// The token must pass signature+expiry verification AND match the stored
// value: a valid-but-superseded token (rotated away by a later login, or
// cleared by logout) is rejected before its own expiry. The refresh token
// itself is not rotated here.
func (s *Service) Refresh(ctx context.Context, refreshToken string, now time.Time) (string, time.Time, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", time.Time{}, err // token.ErrTokenExpired or ErrTokenInvalid
	}

	account, err := s.store.GetAccountByID(ctx, claims.ID)
	if err != nil {
		if identity.IsNotFound(err) {
			return "", time.Time{}, ErrSessionRevoked
		}
		return "", time.Time{}, err
	}

	if !refreshTokenIsCurrent(account, refreshToken) {
		return "", time.Time{}, ErrSessionRevoked
	}

	sub := token.Subject{ID: account.ID, Name: account.Name, Email: account.Email}
	accessToken, accessExp, err := s.tokens.IssueAccess(sub, now)
	if err != nil {
		return "", time.Time{}, err
	}

	s.log.Info("auth.refresh.success", "account_id", account.ID)
	return accessToken, accessExp, nil
}

// ChangePassword verifies the current password and replaces the stored
// credential. Outstanding refresh tokens are left untouched: the stored
// session keeps working until logout or expiry.
func (s *Service) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string, now time.Time) error {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	if err := s.hasher.Validate(newPassword); err != nil {
		return &ValidationError{Violations: []string{
			"Password must be at least 8 characters long for security reasons.",
		}}
	}

	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(currentPassword, account.PasswordHash, account.PasswordSalt)
	if err != nil || !ok {
		return ErrWrongPassword
	}

	// Only the hash is retained, so a no-op change is detected by verifying
	// the candidate against the old credential, never by comparing plaintexts.
	same, err := s.hasher.Verify(newPassword, account.PasswordHash, account.PasswordSalt)
	if err != nil {
		return err
	}
	if same {
		return ErrSamePassword
	}

	cred, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePassword(ctx, account.ID, cred.Hash, cred.Salt, now); err != nil {
		return err
	}

	s.log.Info("auth.change_password.success", "account_id", account.ID)
	return nil
}

// Authenticate verifies an access token and loads the live account behind
// it. Used by the HTTP middleware guarding protected routes.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (identity.Account, error) {
	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return identity.Account{}, err
	}
	return s.store.GetAccountByID(ctx, claims.ID)
}

func refreshTokenIsCurrent(account identity.Account, presented string) bool {
	if account.RefreshTokenHash == nil || *account.RefreshTokenHash == "" {
		return false
	}
	stored := *account.RefreshTokenHash
	candidate := token.HashSHA256Hex(presented)
	if len(stored) != len(candidate) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
