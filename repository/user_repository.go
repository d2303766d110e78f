package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"support-desk-api/entity"
)

type UserRepository struct {
	Repository[entity.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (repository UserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	if err := db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (repository UserRepository) ExistsByEmailOrUsername(ctx context.Context, db *gorm.DB, email, username string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

// FindWithAgent loads the user and its agent profile, if any.
func (repository UserRepository) FindWithAgent(ctx context.Context, db *gorm.DB, id uint) (*entity.User, error) {
	var user entity.User
	if err := db.WithContext(ctx).Preload("Agent").Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (repository UserRepository) MarkVerified(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("is_verified", true).Error
}

type OTPRepository struct {
	Repository[entity.UserOTP]
}

func NewOTPRepository() *OTPRepository {
	return &OTPRepository{}
}

func (repository OTPRepository) FindActiveByUserID(ctx context.Context, db *gorm.DB, userID uint, now time.Time) (*entity.UserOTP, error) {
	var otp entity.UserOTP
	err := db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Take(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (repository OTPRepository) IncrementAttempts(ctx context.Context, db *gorm.DB, userID uint) error {
	return db.WithContext(ctx).
		Model(&entity.UserOTP{}).
		Where("user_id = ?", userID).
		Update("attempts", gorm.Expr("attempts + ?", 1)).Error
}

// Upsert replaces the OTP of otp.UserID and resets its attempts.
func (repository OTPRepository) Upsert(ctx context.Context, db *gorm.DB, otp *entity.UserOTP) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"otp", "expires_at", "attempts", "updated_at"}),
	}).Create(otp).Error
}

type AgentRepository struct {
	Repository[entity.Agent]
}

func NewAgentRepository() *AgentRepository {
	return &AgentRepository{}
}

// FindUserIDsByAgentIDs maps agent ids to the ids of their backing users.
// Unknown agent ids are absent from the result.
func (repository AgentRepository) FindUserIDsByAgentIDs(ctx context.Context, db *gorm.DB, agentIDs []uint) (map[uint]uint, error) {
	var agents []entity.Agent
	if err := db.WithContext(ctx).Select("id", "user_id").Where("id IN ?", agentIDs).Find(&agents).Error; err != nil {
		return nil, err
	}
	resolved := make(map[uint]uint, len(agents))
	for _, agent := range agents {
		resolved[agent.ID] = agent.UserID
	}
	return resolved, nil
}
