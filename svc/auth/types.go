package auth

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hustwenchao/bookshelf/pkg/sanitizer"
)

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Identity is the normalized profile returned by a provider exchange.
type Identity struct {
	Provider      string
	ProviderID    string
	Email         string
	EmailVerified bool
	Name          string
	AvatarURL     string
}

// User is the persisted record in the users collection.
type User struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email      string        `bson:"email" json:"email"`
	Name       string        `bson:"name,omitempty" json:"name,omitempty"`
	AvatarURL  string        `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Provider   string        `bson:"provider,omitempty" json:"provider,omitempty"`
	ProviderID string        `bson:"provider_id,omitempty" json:"provider_id,omitempty"`
	Role       Role          `bson:"role" json:"role"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `bson:"updated_at" json:"updated_at"`
}

// Session is the decoded content of a valid session token. It is shared by
// the SessionManager and the Guard.
type Session struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Role        Role      `json:"role"`
	AccessToken string    `json:"-"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s Session) IsAdmin() bool { return s.Role.IsAdmin() }

// AllowEntry grants the admin role. Either field may be empty; an empty field
// never matches.
type AllowEntry struct {
	ProviderID string
	Email      string
}

// AllowList is the set of identities granted the admin role.
type AllowList []AllowEntry

// ParseAllowList reads entries in the form "providerId:email,providerId:email".
// Either side of the colon may be empty; an entry without a colon is treated
// as an email when it contains "@" and as a provider id otherwise.
func ParseAllowList(raw string) (AllowList, error) {
	var list AllowList
	for item := range strings.SplitSeq(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		var entry AllowEntry
		if id, email, ok := strings.Cut(item, ":"); ok {
			entry = AllowEntry{ProviderID: strings.TrimSpace(id), Email: sanitizer.NormalizeEmail(email)}
		} else if strings.Contains(item, "@") {
			entry = AllowEntry{Email: sanitizer.NormalizeEmail(item)}
		} else {
			entry = AllowEntry{ProviderID: item}
		}

		if entry.ProviderID == "" && entry.Email == "" {
			return nil, fmt.Errorf("%w: empty entry %q", ErrInvalidAllowList, item)
		}
		list = append(list, entry)
	}
	return list, nil
}
