// Package auth gère l'identité : inscription, connexion, jetons de session
// et profil. L'identité courante est mise en cache dans Redis.
package auth

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"mars_shop/internal/apperr"
	"mars_shop/internal/cache"
	"mars_shop/internal/models"
	"mars_shop/internal/repository"
)

const MinPasswordLength = 6

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Session : jeton signé et identité associée.
type Session struct {
	Token  string
	Claims *Claims
	User   models.User
}

type Service struct {
	users   repository.UserRepository
	tokens  *Tokens
	revoker Revoker
	cache   *cache.Cache
	now     func() time.Time
}

func NewService(users repository.UserRepository, tokens *Tokens, revoker Revoker, c *cache.Cache) *Service {
	if revoker == nil {
		revoker = NewMemoryRevoker()
	}
	return &Service{users: users, tokens: tokens, revoker: revoker, cache: c, now: time.Now}
}

func (s *Service) Tokens() *Tokens { return s.tokens }

func (in RegisterInput) normalized() RegisterInput {
	return RegisterInput{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: in.Password,
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
	}
}

func (in RegisterInput) validate() error {
	var fields []string
	if in.Name == "" {
		fields = append(fields, "name")
	}
	if !validEmail(in.Email) {
		fields = append(fields, "email")
	}
	if in.Phone == "" {
		fields = append(fields, "phone")
	}
	if in.Address == "" {
		fields = append(fields, "address")
	}
	if len(fields) > 0 {
		return apperr.Validation("Veuillez remplir tous les champs", fields...)
	}
	if len(in.Password) < MinPasswordLength {
		return apperr.Validation("Le mot de passe doit contenir au moins 6 caractères", "password")
	}
	return nil
}

var validate = validator.New()

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// Register crée un compte client. Un email déjà inscrit renvoie un conflit
// sans rien créer.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return Session{}, err
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	if err == nil {
		return Session{}, apperr.Conflict("Cet email est déjà utilisé")
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return Session{}, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return Session{}, err
	}
	now := s.now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return Session{}, err
	}
	log.Printf("✅ Utilisateur créé : %s", user.Email)
	return s.issue(user)
}

// Login vérifie le couple email / mot de passe. Toute erreur d'identification
// renvoie le même message.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	invalid := apperr.Auth("Email ou mot de passe incorrect")

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if apperr.Is(err, apperr.KindNotFound) {
		return Session{}, invalid
	}
	if err != nil {
		return Session{}, err
	}
	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		log.Printf("⚠️ Hash illisible pour %s: %v", user.Email, err)
		return Session{}, invalid
	}
	if !ok {
		return Session{}, invalid
	}
	log.Printf("✅ Connexion de %s", user.Email)
	return s.issue(user)
}

func (s *Service) issue(user models.User) (Session, error) {
	token, claims, err := s.tokens.Issue(user)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, Claims: claims, User: user}, nil
}

// Logout révoque le jeton jusqu'à son expiration.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.Remaining(s.now())); err != nil {
		return apperr.Transient("révocation du jeton", err)
	}
	if err := s.cache.Delete(ctx, cache.SessionKey(claims.UserID)); err != nil {
		log.Printf("⚠️ Invalidation session %s: %v", claims.UserID, err)
	}
	return nil
}

// Authenticate résout un jeton en identité. Jeton illisible, expiré ou
// révoqué : AuthError.
func (s *Service) Authenticate(ctx context.Context, raw string) (Session, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return Session{}, apperr.Auth("Session invalide ou expirée")
	}
	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Session{}, apperr.Transient("vérification révocation", err)
	}
	if revoked {
		return Session{}, apperr.Auth("Session révoquée")
	}

	user, err := s.CurrentUser(ctx, claims.UserID)
	if apperr.Is(err, apperr.KindNotFound) {
		return Session{}, apperr.Auth("Utilisateur inconnu")
	}
	if err != nil {
		return Session{}, err
	}
	return Session{Token: raw, Claims: claims, User: user}, nil
}

// CurrentUser lit l'identité via le cache Redis session:<id>.
func (s *Service) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	return cache.Fetch(ctx, s.cache, cache.SessionKey(userID), cache.SessionCacheTTL,
		func(ctx context.Context) (models.User, error) {
			return s.users.Get(ctx, userID)
		})
}

// UpdateProfile fusionne les champs fournis dans le profil courant.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	var fields []string
	if patch.Name != nil {
		if user.Name = strings.TrimSpace(*patch.Name); user.Name == "" {
			fields = append(fields, "name")
		}
	}
	if patch.Email != nil {
		if user.Email = strings.ToLower(strings.TrimSpace(*patch.Email)); !validEmail(user.Email) {
			fields = append(fields, "email")
		}
	}
	if patch.Phone != nil {
		user.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Address != nil {
		user.Address = strings.TrimSpace(*patch.Address)
	}
	if len(fields) > 0 {
		return models.User{}, apperr.Validation("Profil invalide", fields...)
	}

	user.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return models.User{}, err
	}
	if err := s.cache.Delete(ctx, cache.SessionKey(userID)); err != nil {
		log.Printf("⚠️ Invalidation session %s: %v", userID, err)
	}
	return user, nil
}

type demoUser struct {
	user     models.User
	password string
}

var demoUsers = []demoUser{
	{models.User{ID: "1", Name: "Admin User", Email: "admin@marsshop.com", Phone: "+1234567890", Address: "123 Admin Street, Mars City", IsAdmin: true}, "admin"},
	{models.User{ID: "2", Name: "John Doe", Email: "john@example.com", Phone: "+1987654321", Address: "456 Customer Ave, Earth City"}, "password"},
}

// SeedDemoUsers crée les comptes de démonstration s'ils n'existent pas.
func SeedDemoUsers(ctx context.Context, users repository.UserRepository) error {
	for _, demo := range demoUsers {
		hash, err := HashPassword(demo.password)
		if err != nil {
			return err
		}
		u := demo.user
		u.PasswordHash = hash
		u.CreatedAt = time.Now().UTC()
		u.UpdatedAt = u.CreatedAt
		err = users.Create(ctx, u)
		if apperr.Is(err, apperr.KindConflict) {
			continue
		}
		if err != nil {
			return err
		}
		log.Printf("✅ Compte de démonstration %s créé", u.Email)
	}
	return nil
}
