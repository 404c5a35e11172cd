package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/slicehub/pizza-service/internal/config"
	"github.com/slicehub/pizza-service/internal/models"
	"github.com/slicehub/pizza-service/internal/store"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Principal is the identity reconstructed from a validated session token.
// Roles are the ones captured at issuance; later role changes do not
// affect an already-issued token unless it is revoked.
type Principal struct {
	ID    uuid.UUID
	Name  string
	Email string
	Roles []models.UserRole
}

func (p *Principal) IsAdmin() bool {
	for _, r := range p.Roles {
		if r.Role == models.RoleAdmin {
			return true
		}
	}
	return false
}

func (p *Principal) IsFranchiseeOf(franchiseID uuid.UUID) bool {
	for _, r := range p.Roles {
		if r.Role == models.RoleFranchisee && r.FranchiseID != nil && *r.FranchiseID == franchiseID {
			return true
		}
	}
	return false
}

// TokenService issues, validates, and revokes signed session tokens.
// Revocation is tracked in the credential store by token id (jti) and
// checked synchronously on every Validate.
type TokenService struct {
	secret []byte
	expiry time.Duration
	store  store.Store
}

func NewTokenService(cfg *config.Config, st store.Store) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTExpiry,
		store:  st,
	}
}

func (t *TokenService) Issue(user *models.User) (string, error) {
	roles := make([]map[string]any, 0, len(user.Roles))
	for _, r := range user.Roles {
		claim := map[string]any{"role": string(r.Role)}
		if r.FranchiseID != nil {
			claim["franchiseId"] = r.FranchiseID.String()
		}
		roles = append(roles, claim)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"name":  user.Name,
		"email": user.Email,
		"roles": roles,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(t.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenService) Validate(raw string) (*Principal, error) {
	claims, err := t.parse(raw)
	if err != nil {
		return nil, err
	}

	tokenID, err := tokenIDFromClaims(claims)
	if err != nil {
		return nil, ErrInvalidToken
	}
	revoked, err := t.store.IsTokenRevoked(tokenID)
	if err != nil {
		return nil, fmt.Errorf("revocation check failed: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return principalFromClaims(claims)
}

// Revoke marks the token unusable for all future Validate calls.
// Revoking an already-revoked token returns ErrTokenRevoked, which
// callers treat as a no-op success (logging out twice is not an error).
func (t *TokenService) Revoke(raw string) error {
	claims, err := t.parse(raw)
	if err != nil {
		return err
	}

	tokenID, err := tokenIDFromClaims(claims)
	if err != nil {
		return ErrInvalidToken
	}
	revoked, err := t.store.IsTokenRevoked(tokenID)
	if err != nil {
		return fmt.Errorf("revocation check failed: %w", err)
	}
	if revoked {
		return ErrTokenRevoked
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ErrInvalidToken
	}

	expiresAt := time.Now().Add(t.expiry)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return t.store.RevokeToken(&models.RevokedToken{
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
}

func (t *TokenService) parse(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func tokenIDFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	jti, _ := claims["jti"].(string)
	return uuid.Parse(jti)
}

func principalFromClaims(claims jwt.MapClaims) (*Principal, error) {
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	p := &Principal{ID: id}
	p.Name, _ = claims["name"].(string)
	p.Email, _ = claims["email"].(string)

	rawRoles, _ := claims["roles"].([]any)
	for _, rr := range rawRoles {
		m, ok := rr.(map[string]any)
		if !ok {
			return nil, ErrInvalidToken
		}
		roleName, _ := m["role"].(string)
		role := models.UserRole{UserID: id, Role: models.Role(roleName)}
		if fid, ok := m["franchiseId"].(string); ok {
			parsed, err := uuid.Parse(fid)
			if err != nil {
				return nil, ErrInvalidToken
			}
			role.FranchiseID = &parsed
		}
		p.Roles = append(p.Roles, role)
	}
	return p, nil
}
