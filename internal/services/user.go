package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/erwannT/callForPapers/internal/domain"
)

const verificationTokenExpiry = 48 * time.Hour

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo     domain.UserRepository
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	verifier     domain.TokenVerifier
	tokenExpiry  time.Duration
	emailService domain.EmailService
	transactor   domain.Transactor
	hostname     string
}

// NewUserService creates a UserService. The verification link embeds a
// signed token from the same codec that backs login tokens.
func NewUserService(userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	tokenExpiry time.Duration,
	emailService domain.EmailService,
	transactor domain.Transactor,
	hostname string,
) domain.UserService {
	return &userService{
		userRepo:     userRepo,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		verifier:     verifier,
		tokenExpiry:  tokenExpiry,
		emailService: emailService,
		transactor:   transactor,
		hostname:     hostname,
	}
}

// SignUp creates an unverified user and sends the verification email. The
// user row and the email are one transactional unit.
func (s *userService) SignUp(ctx context.Context, email, firstName, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := domain.NewUser(email, strings.TrimSpace(firstName), hash, salt, now, now)

	err = s.transactor.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		token, err := s.tokenIssuer.Issue(user.ID, user.Email, false, false, verificationTokenExpiry)
		if err != nil {
			return fmt.Errorf("issue verification token: %w", err)
		}
		data := &domain.VerificationEmailData{
			Email:     user.Email,
			FirstName: user.FirstName,
			Hostname:  s.hostname,
			Token:     token,
		}
		if err := s.emailService.SendVerification(ctx, data); err != nil {
			return fmt.Errorf("send verification email: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyEmail validates a verification token and marks its subject verified.
func (s *userService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return nil, domain.ErrNotVerified
	}
	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, domain.ErrNotVerified
	}
	if err := s.userRepo.SetVerified(ctx, userID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a bearer token. The verified claim
// mirrors the user record, so an unverified account gets a token the
// restricted endpoints will refuse.
func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.Verified, user.Admin, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetByID(ctx context.Context, id int) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
