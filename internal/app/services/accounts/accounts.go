// Package accounts registers users and organizations, checks credentials and
// keeps the payment account organizations receive financial donations into.
package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/app/system/htmlsanitize"
	"github.com/assisberlanda/sousolidario/internal/app/system/inputval"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the validated shape of a sign-up.
type RegisterInput struct {
	Login            string `json:"login" validate:"notblank,min=3,max=60" label:"Login"`
	Password         string `json:"password" validate:"required,min=8,max=72" label:"Password"`
	Name             string `json:"name" validate:"notblank,max=200" label:"Name"`
	Email            string `json:"email" validate:"notblank,emailaddr" label:"Email"`
	Role             string `json:"role" validate:"omitempty,oneof=user organization" label:"Role"`
	OrganizationName string `json:"organizationName" validate:"max=200" label:"Organization name"`
}

// PaymentAccountInput is what an organization shows financial donors.
type PaymentAccountInput struct {
	BankName    string `json:"bankName" validate:"max=100" label:"Bank"`
	Agency      string `json:"agency" validate:"max=20" label:"Agency"`
	Account     string `json:"account" validate:"max=30" label:"Account"`
	PixKey      string `json:"pixKey" validate:"max=100" label:"PIX key"`
	Beneficiary string `json:"beneficiary" validate:"notblank,max=200" label:"Beneficiary"`
}

// Service owns user records.
type Service struct {
	st  *store.Store
	log *zap.Logger

	// Cost is the bcrypt work factor; tests lower it.
	Cost int
}

func New(st *store.Store, logger *zap.Logger) *Service {
	return &Service{st: st, log: logger, Cost: bcrypt.DefaultCost}
}

// Register creates an account. Login names are unique after case folding.
func (s *Service) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if res := inputval.Validate(in); res.HasErrors() {
		return models.User{}, res.Err()
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RoleUser
	}
	orgName := htmlsanitize.PlainText(in.OrganizationName)
	if role == models.RoleOrganization && orgName == "" {
		return models.User{}, inputval.Fail("organizationName", "Organization name is required.")
	}
	return s.create(ctx, in.Login, in.Password, htmlsanitize.PlainText(in.Name), strings.TrimSpace(in.Email), role, orgName)
}

func (s *Service) create(ctx context.Context, login, password, name, email, role, orgName string) (models.User, error) {
	login = strings.TrimSpace(login)
	loginCI := text.Fold(login)
	taken := inputval.Fail("login", "Login is already taken.")

	if _, found, err := s.st.Users.FindOne(ctx, store.Filter{"login_ci": loginCI}); err != nil {
		return models.User{}, err
	} else if found {
		return models.User{}, taken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.st.Users.Create(ctx, models.User{
		Login:            login,
		LoginCI:          loginCI,
		PasswordHash:     string(hash),
		FullName:         name,
		Email:            email,
		Role:             role,
		OrganizationName: orgName,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return models.User{}, taken
	}
	return u, err
}

// Authenticate returns the account for login when password matches. A wrong
// password and an unknown login look the same to the caller.
func (s *Service) Authenticate(ctx context.Context, login, password string) (models.User, bool, error) {
	u, found, err := s.FindByLogin(ctx, login)
	if err != nil || !found {
		return models.User{}, false, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, false, nil
	}
	return u, true, nil
}

// Get returns the account with id.
func (s *Service) Get(ctx context.Context, id int64) (models.User, bool, error) {
	return s.st.Users.Get(ctx, id)
}

// FindByLogin returns the account whose login matches ignoring case.
func (s *Service) FindByLogin(ctx context.Context, login string) (models.User, bool, error) {
	return s.st.Users.FindOne(ctx, store.Filter{"login_ci": text.Fold(strings.TrimSpace(login))})
}

// Delete removes the account. Campaigns it created are kept.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.st.Users.Delete(ctx, id)
}

// SetPaymentAccount stores the account financial donations to this user's
// campaigns are routed to.
func (s *Service) SetPaymentAccount(ctx context.Context, id int64, in PaymentAccountInput) (models.User, bool, error) {
	if res := inputval.Validate(in); res.HasErrors() {
		return models.User{}, false, res.Err()
	}
	acct := models.AccountInfo{
		BankName:    htmlsanitize.PlainText(in.BankName),
		Agency:      htmlsanitize.PlainText(in.Agency),
		Account:     htmlsanitize.PlainText(in.Account),
		PixKey:      strings.TrimSpace(in.PixKey),
		Beneficiary: htmlsanitize.PlainText(in.Beneficiary),
	}
	if acct.PixKey == "" && (acct.Account == "" || acct.Agency == "") {
		return models.User{}, false, inputval.Fail("pixKey", "Give a PIX key or an agency and account.")
	}
	return s.st.Users.Update(ctx, id, store.Set(models.UserPatch{PaymentAccount: &acct}.Set()))
}

// EnsureAdmin creates the bootstrap admin account unless the login exists.
func (s *Service) EnsureAdmin(ctx context.Context, login, password string) (bool, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return false, nil
	}
	if _, found, err := s.FindByLogin(ctx, login); err != nil || found {
		return false, err
	}
	u, err := s.create(ctx, login, password, "Administrator", "", models.RoleAdmin, "")
	if err != nil {
		return false, err
	}
	s.log.Info("admin account created", zap.Int64("user_id", u.ID), zap.String("login", u.Login))
	return true, nil
}

// FetchSessionUser satisfies auth.UserFetcher.
func (s *Service) FetchSessionUser(ctx context.Context, id int64) (*auth.SessionUser, bool, error) {
	u, found, err := s.st.Users.Get(ctx, id)
	if err != nil || !found {
		return nil, found, err
	}
	return &auth.SessionUser{
		ID:               u.ID,
		Name:             u.FullName,
		LoginID:          u.Login,
		Role:             u.Role,
		OrganizationName: u.OrganizationName,
	}, true, nil
}
