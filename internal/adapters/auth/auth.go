package auth

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"damq_travel/internal/adapters/observability"
)

// Errors mirror the auth provider's code taxonomy; Message maps them to
// the fixed human-readable set the admin UI shows.
var (
	ErrUserNotFound = errors.New("auth: user not found")
	ErrWrongPass    = errors.New("auth: wrong password")
	ErrInvalidEmail = errors.New("auth: invalid email")
	ErrThrottled    = errors.New("auth: too many attempts")
)

var authMessages = map[error]string{
	ErrUserNotFound: "Пользователь не найден.",
	ErrWrongPass:    "Неверный пароль.",
	ErrInvalidEmail: "Некорректный email.",
	ErrThrottled:    "Слишком много попыток. Попробуйте позже.",
}

const fallbackMessage = "Ошибка входа. Проверьте данные."

// Message returns the user-facing text for a login failure. Unmapped
// errors fall back to a generic message.
func Message(err error) string {
	for sentinel, msg := range authMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return fallbackMessage
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// State is the current session view handed to subscribers.
type State struct {
	LoggedIn bool
	Email    string
}

// Manager authenticates the configured admin and issues HS256 session
// tokens. Subscribers receive the current state once at subscribe time
// and again on every transition.
type Manager struct {
	adminEmail string
	adminHash  string // bcrypt
	secret     []byte
	ttl        time.Duration

	mu       sync.Mutex
	state    State
	subs     []func(State)
	limiters map[string]*rate.Limiter // keyed by client IP
}

func New(adminEmail, adminHash string, secret []byte, ttl time.Duration) *Manager {
	return &Manager{
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		adminHash:  adminHash,
		secret:     secret,
		ttl:        ttl,
		limiters:   map[string]*rate.Limiter{},
	}
}

// Subscribe registers a listener and fires it immediately with the
// current state.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	st := m.state
	m.mu.Unlock()
	fn(st)
}

func (m *Manager) notify(st State) {
	m.mu.Lock()
	m.state = st
	subs := make([]func(State), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}

// Login verifies credentials and returns a signed session token.
func (m *Manager) Login(ctx context.Context, email, password, clientIP string) (string, error) {
	if !m.allow(clientIP) {
		observability.ObserveAuth("login_throttled")
		return "", ErrThrottled
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		observability.ObserveAuth("login_fail")
		return "", ErrInvalidEmail
	}
	if email != m.adminEmail {
		observability.ObserveAuth("login_fail")
		return "", ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.adminHash), []byte(password)); err != nil {
		observability.ObserveAuth("login_fail")
		return "", ErrWrongPass
	}

	claims := jwt.MapClaims{
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(m.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", err
	}
	observability.ObserveAuth("login_ok")
	m.notify(State{LoggedIn: true, Email: email})
	return token, nil
}

func (m *Manager) Logout() {
	observability.ObserveAuth("logout")
	m.notify(State{})
}

// allow applies a per-IP token bucket: a short burst, then one attempt
// every few seconds.
func (m *Manager) allow(ip string) bool {
	m.mu.Lock()
	l, ok := m.limiters[ip]
	if !ok {
		l = rate.NewLimiter(rate.Every(5*time.Second), 5)
		m.limiters[ip] = l
	}
	m.mu.Unlock()
	return l.Allow()
}

// Verify parses a session token and returns the subject email.
func (m *Manager) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token payload")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", errors.New("invalid token payload")
	}
	return email, nil
}

const SessionCookie = "damq_session"

type ctxKey struct{}

// EmailFromContext returns the authenticated admin email, if any.
func EmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKey{}).(string)
	return v, ok
}

// Middleware gates admin routes on a valid session cookie.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		if err != nil || c.Value == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		email, err := m.Verify(c.Value)
		if err != nil {
			http.Error(w, "invalid or expired session", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, email)))
	})
}
