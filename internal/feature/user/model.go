package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProfileModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	Username  *string   `gorm:"column:username"`
	AvatarURL *string   `gorm:"column:avatar_url"`
	Role      string    `gorm:"column:role;not null;default:user"`

	LevelNumeric      int            `gorm:"column:level_numeric"`
	GamificationLevel string         `gorm:"column:gamification_level"`
	PointsBalance     int64          `gorm:"column:points_balance"`
	PointsLifetime    int64          `gorm:"column:points_lifetime"`
	PointsSpent       int64          `gorm:"column:points_spent"`
	Badges            pq.StringArray `gorm:"column:badges;type:text[]"`

	MembershipPlan      string     `gorm:"column:membership_plan"`
	MembershipStatus    string     `gorm:"column:membership_status"`
	MembershipStartedAt *time.Time `gorm:"column:membership_started_at"`
	MembershipExpiresAt *time.Time `gorm:"column:membership_expires_at"`

	IsBlocked     bool       `gorm:"column:is_blocked"`
	BlockedAt     *time.Time `gorm:"column:blocked_at"`
	BlockedReason *string    `gorm:"column:blocked_reason"`

	LastSessionAt *time.Time `gorm:"column:last_session_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`

	Preferences      JSONMap    `gorm:"column:preferences;type:jsonb"`
	ReferralCode     *string    `gorm:"column:referral_code"`
	ReferredByUserID *uuid.UUID `gorm:"column:referred_by_user_id;type:uuid"`
	ReferralsCount   int64      `gorm:"column:referrals_count"`
}

func (ProfileModel) TableName() string { return "public.users" }

// JSONMap scans a jsonb object column. NULL scans to an empty map.
type JSONMap map[string]any

func (m *JSONMap) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("jsonmap: unsupported source %T", src)
	}
	out := JSONMap{}
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("jsonmap: %w", err)
	}
	*m = out
	return nil
}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}
