package services

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/models"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

// SessionService issues and validates time-limited access tokens. The token
// itself is an HS256-signed claim set (so it cannot be forged or guessed),
// but validation always goes through the stored session row: logout and
// lazy expiry deletion win over whatever the token says.
type SessionService struct {
	DB     *gorm.DB
	Secret []byte
	TTL    time.Duration

	cacheMu sync.RWMutex
	cache   map[string]models.Session
}

func NewSessionService(db *gorm.DB, secret string, ttl time.Duration) *SessionService {
	return &SessionService{
		DB:     db,
		Secret: []byte(secret),
		TTL:    ttl,
		cache:  make(map[string]models.Session),
	}
}

type sessionClaims struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// Login checks credentials and creates a fresh session. Each login gets its
// own session; concurrent sessions per user are fine.
func (s *SessionService) Login(deviceID, userID, password, tableID string) (models.Session, error) {
	if deviceID == "" || userID == "" || password == "" || tableID == "" {
		return models.Session{}, errors.Join(ErrInvalidInput, errors.New("device_id, user_id, password, table_id required"))
	}

	var user models.User
	if err := s.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a bcrypt round anyway so unknown users cost the same
			// as a wrong password.
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return models.Session{}, ErrInvalidCredentials
		}
		return models.Session{}, errors.Join(ErrUnavailable, err)
	}

	if err := s.checkPassword(&user, password); err != nil {
		return models.Session{}, err
	}

	now := time.Now()
	expiresAt := now.Add(s.TTL)
	token, err := s.signToken(user, deviceID, expiresAt)
	if err != nil {
		return models.Session{}, err
	}

	session := models.Session{
		Token:     token,
		UserID:    user.UserID,
		DeviceID:  deviceID,
		TableID:   tableID,
		Role:      user.Role,
		Specialty: user.Specialty,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if err := withRetry(func() error { return s.DB.Create(&session).Error }); err != nil {
		return models.Session{}, err
	}

	s.cachePut(session)

	utils.InfoLogger.Printf("Session issued for %s (role=%s, device=%s)", user.UserID, user.Role, deviceID)
	return session, nil
}

// checkPassword compares against the stored bcrypt hash. Rows seeded before
// hashing was introduced hold plaintext; those are accepted once and
// upgraded to a hash in place.
func (s *SessionService) checkPassword(user *models.User, password string) error {
	if strings.HasPrefix(user.Password, "$2a$") || strings.HasPrefix(user.Password, "$2b$") {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return ErrInvalidCredentials
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}
	if hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
		s.DB.Model(user).Update("password", string(hashed))
		utils.InfoLogger.Printf("Upgraded legacy credential for %s", user.UserID)
	}
	return nil
}

func (s *SessionService) signToken(user models.User, deviceID string, expiresAt time.Time) (string, error) {
	claims := &sessionClaims{
		UserID:   user.UserID,
		Role:     user.Role,
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "smart-restaurant",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Validate resolves a token to its session. Expired sessions are deleted on
// the spot (lazy expiry, no background sweep).
func (s *SessionService) Validate(token string) (models.Session, error) {
	if token == "" {
		return models.Session{}, ErrUnauthorized
	}

	now := time.Now()

	s.cacheMu.RLock()
	cached, ok := s.cache[token]
	s.cacheMu.RUnlock()
	if ok {
		if cached.Expired(now) {
			s.expire(token)
			return models.Session{}, ErrTokenExpired
		}
		return cached, nil
	}

	var session models.Session
	if err := s.DB.First(&session, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Session{}, ErrUnauthorized
		}
		return models.Session{}, errors.Join(ErrUnavailable, err)
	}
	if session.Expired(now) {
		s.expire(token)
		return models.Session{}, ErrTokenExpired
	}

	s.cachePut(session)
	return session, nil
}

// cachePut stores the session and sweeps expired entries in the same
// critical section, so sessions that are never validated again do not pin
// cache memory past their TTL. The cache stays bounded by live sessions.
func (s *SessionService) cachePut(session models.Session) {
	now := time.Now()
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	for token, cached := range s.cache {
		if cached.Expired(now) {
			delete(s.cache, token)
		}
	}
	s.cache[session.Token] = session
}

// RequireRole validates the token and checks the role snapshot taken at
// login. Role edits after login do not bite until the session expires.
func (s *SessionService) RequireRole(token, role string) (models.Session, error) {
	session, err := s.Validate(token)
	if err != nil {
		return models.Session{}, err
	}
	if session.Role != role {
		return models.Session{}, ErrForbidden
	}
	return session, nil
}

// RequireAnyRole is RequireRole over a set, used by the staff/admin surface.
func (s *SessionService) RequireAnyRole(token string, roles ...string) (models.Session, error) {
	session, err := s.Validate(token)
	if err != nil {
		return models.Session{}, err
	}
	for _, role := range roles {
		if session.Role == role {
			return session, nil
		}
	}
	return models.Session{}, ErrForbidden
}

// Logout destroys the session immediately.
func (s *SessionService) Logout(token string) {
	s.expire(token)
}

func (s *SessionService) expire(token string) {
	s.cacheMu.Lock()
	delete(s.cache, token)
	s.cacheMu.Unlock()
	s.DB.Delete(&models.Session{}, "token = ?", token)
}

// dummyHash is a throwaway bcrypt digest used to equalize timing on the
// unknown-user path.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)
