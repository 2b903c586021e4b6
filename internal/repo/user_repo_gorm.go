package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"urbanvibe-api/internal/core/database"
	"urbanvibe-api/internal/domain"
	"urbanvibe-api/internal/feature/user"
)

const profileColumns = `u.id, u.email, u.username, u.avatar_url, u.role,
u.level_numeric, u.gamification_level, u.points_balance, u.points_lifetime, u.points_spent, u.badges,
u.membership_plan, u.membership_status, u.membership_started_at, u.membership_expires_at,
u.is_blocked, u.blocked_at, u.blocked_reason, u.last_session_at, u.created_at,
u.preferences, u.referral_code, u.referred_by_user_id, u.referrals_count`

type UserRepo struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewUserRepo(db *gorm.DB, timeout time.Duration) *UserRepo {
	return &UserRepo{db: db, timeout: timeout}
}

func profileQuery(tx *gorm.DB, id uuid.UUID, row *user.ProfileModel) *gorm.DB {
	return tx.Table("public.users AS u").Select(profileColumns).Where("u.id = ?", id).Take(row)
}

// FindProfile returns the raw profile, blocked or not; the caller decides
// what a blocked profile means.
func (r *UserRepo) FindProfile(ctx context.Context, id uuid.UUID) (p *domain.UserProfile, err error) {
	start := time.Now()
	defer func() { database.Observe("users.profile", start, err) }()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var row user.ProfileModel
	err = profileQuery(r.db.WithContext(ctx), id, &row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, database.Classify("find profile", err)
	}
	return toProfile(&row), nil
}

func toProfile(m *user.ProfileModel) *domain.UserProfile {
	badges := []string(m.Badges)
	if badges == nil {
		badges = []string{}
	}
	prefs := map[string]any(m.Preferences)
	if prefs == nil {
		prefs = map[string]any{}
	}
	return &domain.UserProfile{
		ID:                  m.ID,
		Email:               m.Email,
		Username:            m.Username,
		AvatarURL:           m.AvatarURL,
		Role:                domain.Role(m.Role),
		LevelNumeric:        m.LevelNumeric,
		GamificationLevel:   m.GamificationLevel,
		PointsBalance:       m.PointsBalance,
		PointsLifetime:      m.PointsLifetime,
		PointsSpent:         m.PointsSpent,
		Badges:              badges,
		MembershipPlan:      m.MembershipPlan,
		MembershipStatus:    m.MembershipStatus,
		MembershipStartedAt: m.MembershipStartedAt,
		MembershipExpiresAt: m.MembershipExpiresAt,
		IsBlocked:           m.IsBlocked,
		BlockedAt:           m.BlockedAt,
		BlockedReason:       m.BlockedReason,
		LastSessionAt:       m.LastSessionAt,
		CreatedAt:           m.CreatedAt,
		Preferences:         prefs,
		ReferralCode:        m.ReferralCode,
		ReferredByUserID:    m.ReferredByUserID,
		ReferralsCount:      m.ReferralsCount,
	}
}
