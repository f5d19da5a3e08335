package service

import (
	"github.com/mbernahr/simple-eri-test-server/internal/dto"
	"github.com/mbernahr/simple-eri-test-server/internal/repository/credential"
)

// Uniform failure message for both authentication variants, so a caller
// cannot probe which sub-check rejected it.
const authFailedMessage = "Invalid credentials"

type IAuthService interface {
	// AuthenticateToken matches a pre-shared secret case-sensitively against
	// the static allow-list and issues a session token for the owning subject.
	AuthenticateToken(staticToken string) (*dto.AuthResponse, error)

	// AuthenticatePassword checks username/password against the credential
	// store and issues a session token for the username.
	AuthenticatePassword(username, password string) (*dto.AuthResponse, error)

	// IsStaticToken reports whether the value is one of the configured
	// pre-shared secrets. Static secrets authenticate once; they are never
	// valid as standing session proof.
	IsStaticToken(token string) bool
}

type authService struct {
	staticTokens map[string]string // subject -> pre-shared secret
	credentials  credential.Store
	tokenService ITokenService
}

func NewAuthService(staticTokens map[string]string, credentials credential.Store, tokenService ITokenService) IAuthService {
	return &authService{
		staticTokens: staticTokens,
		credentials:  credentials,
		tokenService: tokenService,
	}
}

func (s *authService) AuthenticateToken(staticToken string) (*dto.AuthResponse, error) {
	for subject, secret := range s.staticTokens {
		if staticToken == secret {
			return s.issueFor(subject)
		}
	}
	return authFailure(), nil
}

func (s *authService) AuthenticatePassword(username, password string) (*dto.AuthResponse, error) {
	stored, ok, err := s.credentials.Get(username)
	if err != nil {
		return nil, err
	}
	// Plaintext equality against the stored secret. Known accepted weakness:
	// secrets are not hashed and the comparison is not constant-time.
	if !ok || stored != password {
		return authFailure(), nil
	}
	return s.issueFor(username)
}

func (s *authService) IsStaticToken(token string) bool {
	for _, secret := range s.staticTokens {
		if token == secret {
			return true
		}
	}
	return false
}

func (s *authService) issueFor(subject string) (*dto.AuthResponse, error) {
	token, err := s.tokenService.Issue(subject)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Success: true,
		Token:   &token,
		Message: "Authentication successful",
	}, nil
}

func authFailure() *dto.AuthResponse {
	return &dto.AuthResponse{
		Success: false,
		Token:   nil,
		Message: authFailedMessage,
	}
}
