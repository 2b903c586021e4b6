package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  *string   `json:"username,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Role      Role      `json:"role"`

	LevelNumeric      int      `json:"level_numeric"`
	GamificationLevel string   `json:"gamification_level"`
	PointsBalance     int64    `json:"points_balance"`
	PointsLifetime    int64    `json:"points_lifetime"`
	PointsSpent       int64    `json:"points_spent"`
	Badges            []string `json:"badges"`

	MembershipPlan      string     `json:"membership_plan"`
	MembershipStatus    string     `json:"membership_status"`
	MembershipStartedAt *time.Time `json:"membership_started_at,omitempty"`
	MembershipExpiresAt *time.Time `json:"membership_expires_at,omitempty"`

	IsBlocked     bool       `json:"is_blocked"`
	BlockedAt     *time.Time `json:"blocked_at,omitempty"`
	BlockedReason *string    `json:"blocked_reason,omitempty"`

	LastSessionAt *time.Time `json:"last_session_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	Preferences      map[string]any `json:"preferences"`
	ReferralCode     *string        `json:"referral_code,omitempty"`
	ReferredByUserID *uuid.UUID     `json:"referred_by_user_id,omitempty"`
	ReferralsCount   int64          `json:"referrals_count"`
}

type UserRepository interface {
	// FindProfile returns ErrNotFound when no profile row exists.
	FindProfile(ctx context.Context, id uuid.UUID) (*UserProfile, error)
}
