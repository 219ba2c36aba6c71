package cache

import "github.com/MKhiriev/go-record-sync/models"

// UserCache bundles the scoped caches seen by one user.
type UserCache struct {
	userID  string
	public  *ScopedCache
	private *ScopedCache
	shared  *ScopedCache
}

func NewUserCache(userID string, public, private, shared *ScopedCache) *UserCache {
	return &UserCache{userID: userID, public: public, private: private, shared: shared}
}

func (u *UserCache) UserID() string {
	return u.userID
}

// Cache returns the scoped cache of scope. The anonymous user has only the
// Public cache.
func (u *UserCache) Cache(scope models.Scope) (*ScopedCache, bool) {
	var c *ScopedCache
	switch scope {
	case models.ScopePublic:
		c = u.public
	case models.ScopePrivate:
		c = u.private
	case models.ScopeShared:
		c = u.shared
	}
	return c, c != nil
}
