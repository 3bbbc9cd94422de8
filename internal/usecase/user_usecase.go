package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/bancodemo/api/internal/domain"
)

const activityCacheKey = "users:activity"

// UserUseCase owns registration, authentication, email verification,
// password recovery, and the user directory read paths.
type UserUseCase struct {
	txManager    TransactionManager
	users        UserRepository
	accounts     AccountRepository
	txns         TransactionRepository
	resets       PasswordResetRepository
	idGen        IDGenerator
	mailer       Mailer
	cache        Cache
	metrics      MetricsRecorder
	signupGrant  int64
	blockingMail bool
}

// UserUseCaseConfig holds dependencies for NewUserUseCase.
type UserUseCaseConfig struct {
	TxManager TransactionManager
	Users     UserRepository
	Accounts  AccountRepository
	Txns      TransactionRepository
	Resets    PasswordResetRepository
	IDGen     IDGenerator
	Mailer    Mailer
	Cache     Cache
	Metrics   MetricsRecorder

	// SignupGrant is an optional starting balance in minor units.
	// When positive, registration records a grant transaction from an
	// external counterparty so the ledger invariant holds.
	SignupGrant int64

	// BlockingMail makes registration fail when the verification mail
	// cannot be sent. The user and account stay committed either way.
	BlockingMail bool
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(cfg UserUseCaseConfig) *UserUseCase {
	return &UserUseCase{
		txManager:    cfg.TxManager,
		users:        cfg.Users,
		accounts:     cfg.Accounts,
		txns:         cfg.Txns,
		resets:       cfg.Resets,
		idGen:        cfg.IDGen,
		mailer:       cfg.Mailer,
		cache:        cfg.Cache,
		metrics:      cfg.Metrics,
		signupGrant:  cfg.SignupGrant,
		blockingMail: cfg.BlockingMail,
	}
}

// RegisterInput represents registration input.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a user and their account in one transaction, then
// sends the verification mail. The mail is sent after commit; whether
// its failure fails the request is a configured policy.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	tokenExpires := now.Add(VerifyTokenTTL)

	user := &domain.User{
		ID:                 uc.idGen.Generate(),
		Name:               strings.TrimSpace(input.Name),
		Email:              input.Email,
		HashedPassword:     string(hashed),
		EmailVerified:      false,
		VerifyToken:        &token,
		VerifyTokenExpires: &tokenExpires,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		UserID:    user.ID,
		Balance:   uc.signupGrant,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.users.CreateTx(ctx, tx, user); err != nil {
		return nil, err
	}

	if err := uc.accounts.CreateTx(ctx, tx, account); err != nil {
		return nil, err
	}

	if uc.signupGrant > 0 {
		grant := &domain.Transaction{
			ID:          uc.idGen.Generate(),
			ToAccountID: &account.ID,
			Amount:      uc.signupGrant,
			CreatedAt:   now,
		}

		if err := uc.txns.Create(ctx, tx, grant); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.UserRegistered()
	}

	if err := uc.mailer.SendVerification(ctx, user.Email, user.Name, token); err != nil {
		if uc.blockingMail {
			return nil, err
		}

		log.Error().Err(err).Str("email", user.Email).Msg("verification mail failed")
	}

	user.HashedPassword = ""
	return user, nil
}

// LoginInput represents login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the authenticated identity plus the account handle
// the UI works with.
type LoginResult struct {
	User      *domain.User
	AccountID string
}

// Authenticate verifies credentials and that the email was confirmed.
func (uc *UserUseCase) Authenticate(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	if !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	account, err := uc.accounts.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return &LoginResult{User: user, AccountID: account.ID}, nil
}

// Profile is the /me payload.
type Profile struct {
	User      *domain.User
	AccountID string
}

// GetProfile returns the user and their account id.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	account, err := uc.accounts.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return &Profile{User: user, AccountID: account.ID}, nil
}

// VerifyEmail confirms the address behind a verification token.
func (uc *UserUseCase) VerifyEmail(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrInvalidToken
	}

	user, err := uc.users.GetByVerifyToken(ctx, token)
	if err != nil {
		return domain.ErrInvalidToken
	}

	if user.VerifyTokenExpires == nil || !user.VerifyTokenExpires.After(time.Now().UTC()) {
		return domain.ErrExpiredToken
	}

	return uc.users.MarkEmailVerified(ctx, user.ID)
}

// ForgotPassword issues a reset token and mails it. It never reveals
// whether the address exists.
func (uc *UserUseCase) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil
	}

	token, err := newToken()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	reset := &domain.PasswordReset{
		ID:        uc.idGen.Generate(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(ResetTokenTTL),
		CreatedAt: now,
	}

	if err := uc.resets.Create(ctx, reset); err != nil {
		return err
	}

	if err := uc.mailer.SendPasswordReset(ctx, user.Email, user.Name, token); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("password reset mail failed")
	}

	return nil
}

// ResetPassword redeems a reset token. The password update and the
// used-at stamp commit together so the token is single use.
func (uc *UserUseCase) ResetPassword(ctx context.Context, token, password string) error {
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	reset, err := uc.resets.GetByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return domain.ErrInvalidToken
	}

	now := time.Now().UTC()
	if !reset.Usable(now) {
		return domain.ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.users.UpdatePasswordTx(ctx, tx, reset.UserID, string(hashed)); err != nil {
		return err
	}

	if err := uc.resets.MarkUsedTx(ctx, tx, reset.ID, now); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Contact is a directory entry for the transfer UI.
type Contact struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AccountID *string `json:"accountId"`
}

// ListContacts returns all users ordered by name.
func (uc *UserUseCase) ListContacts(ctx context.Context) ([]*Contact, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}

	contacts := make([]*Contact, 0, len(users))
	for _, u := range users {
		c := &Contact{ID: u.ID, Name: u.Name, Email: u.Email}

		account, err := uc.accounts.GetByUserID(ctx, u.ID)
		if err == nil {
			c.AccountID = &account.ID
		} else if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}

		contacts = append(contacts, c)
	}

	return contacts, nil
}

// UserActivity is one row of the activity report.
type UserActivity struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	CreatedAt time.Time             `json:"createdAt"`
	Account   *domain.Account       `json:"account"`
	Recent    []*domain.Transaction `json:"recentTx"`
}

// ListActivity fans out over every account to collect recent
// transactions. The result is cached briefly; clients tolerate a
// slightly stale report.
func (uc *UserUseCase) ListActivity(ctx context.Context) ([]*UserActivity, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, activityCacheKey); err == nil && cached != nil {
			var report []*UserActivity
			if err := json.Unmarshal(cached, &report); err == nil {
				return report, nil
			}
		}
	}

	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]*UserActivity, 0, len(users))
	for _, u := range users {
		row := &UserActivity{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
			Recent:    []*domain.Transaction{},
		}

		account, err := uc.accounts.GetByUserID(ctx, u.ID)
		if err == nil {
			row.Account = account

			recent, err := uc.txns.ListByAccount(ctx, account.ID, recentActivityFetch)
			if err != nil {
				return nil, err
			}

			if len(recent) > RecentActivityCount {
				recent = recent[:RecentActivityCount]
			}
			row.Recent = recent
		} else if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}

		report = append(report, row)
	}

	if uc.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			if err := uc.cache.Set(ctx, activityCacheKey, data, activityCacheTTL); err != nil {
				log.Warn().Err(err).Msg("activity cache write failed")
			}
		}
	}

	return report, nil
}

// newToken returns a 32-byte random token, hex encoded.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
