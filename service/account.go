package service

import (
	"Margin/config"
	"Margin/dao"
	"Margin/models"
	"Margin/pkg/database"
	"Margin/pkg/encrypt"
	"Margin/pkg/log"
	"Margin/pkg/snowflake"
	"Margin/pkg/utils"
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IUserAccountService = (*UserAccountService)(nil)

type IUserAccountService interface {
	AddUser(ctx context.Context, opt *AddUserOpt) (*models.User, *models.ActivationKey, error)
	UpdateUser(ctx context.Context, user *models.User, authority string) error
	EnableUser(ctx context.Context, user *models.User) error
	DisableUser(ctx context.Context, user *models.User) error
	EnableUserWithActivationKey(ctx context.Context, key *models.ActivationKey, user *models.User) error
	ActivateByCode(ctx context.Context, code string) (*models.User, error)
	UpdatePasswordForUser(ctx context.Context, user *models.User, password string) error
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id uint64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	HasRole(ctx context.Context, user *models.User, authority string) (bool, error)
}

type UserAccountService struct {
	DB               *gorm.DB
	Config           *config.Account
	Validate         *validator.Validate
	UsersRepo        *dao.Users
	RoleDAO          *dao.RoleDAO
	UserRoleDAO      *dao.UserRoleDAO
	ActivationKeyDAO *dao.ActivationKeyDAO
}

// AddUserOpt MainRole 为空时使用配置中的默认角色
type AddUserOpt struct {
	User              *models.User
	Enabled           bool
	MainRole          string
	EmailVerification bool
}

// NewValidator 注册 username 规则：用户名必须能被 @ 原样识别
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return utils.IsMentionable(fl.Field().String())
	})
	return v
}

func (s *UserAccountService) validate(user *models.User) error {
	if err := s.Validate.Struct(user); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}
	return nil
}

// AddUser 创建用户并分配主角色，需要邮箱验证时同时生成激活码
func (s *UserAccountService) AddUser(ctx context.Context, opt *AddUserOpt) (*models.User, *models.ActivationKey, error) {
	if opt == nil || opt.User == nil {
		return nil, nil, ErrUserRequired
	}

	user := opt.User
	user.Enabled = opt.Enabled
	if user.ID == 0 {
		user.ID = snowflake.GenID()
	}
	if err := s.validate(user); err != nil {
		return nil, nil, err
	}

	authority := opt.MainRole
	if authority == "" {
		authority = s.Config.MainRole
	}

	var key *models.ActivationKey
	err := database.RunInTx(ctx, s.DB, func(ctx context.Context) error {
		exist, err := s.UsersRepo.IsUsernameExist(ctx, user.Username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exist {
			return ErrUsernameTaken
		}

		if err := s.UsersRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		role, err := s.RoleDAO.FindOrCreate(ctx, authority)
		if err != nil {
			return fmt.Errorf("find role %s: %w", authority, err)
		}
		if err := s.UserRoleDAO.Assign(ctx, user.ID, role.ID); err != nil {
			return fmt.Errorf("assign role %s: %w", authority, err)
		}

		if !opt.EmailVerification {
			return nil
		}
		key = &models.ActivationKey{UserID: user.ID, Code: uuid.NewString()}
		if err := s.ActivationKeyDAO.Create(ctx, key); err != nil {
			return fmt.Errorf("create activation key: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.L.Info("user created", zap.Uint64("user_id", user.ID), zap.String("role", authority))
	return user, key, nil
}

// UpdateUser 校验或保存失败时直接返回，不动角色；
// 用户尚未拥有 authority 时，用它替换掉全部已有角色
func (s *UserAccountService) UpdateUser(ctx context.Context, user *models.User, authority string) error {
	if user == nil {
		return ErrUserRequired
	}
	if err := s.validate(user); err != nil {
		return err
	}

	return database.RunInTx(ctx, s.DB, func(ctx context.Context) error {
		if err := s.UsersRepo.Save(ctx, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		if authority == "" {
			return nil
		}

		role, err := s.RoleDAO.FindOrCreate(ctx, authority)
		if err != nil {
			return fmt.Errorf("find role %s: %w", authority, err)
		}
		has, err := s.UserRoleDAO.HasRole(ctx, user.ID, role.ID)
		if err != nil {
			return err
		}
		if has {
			return nil
		}

		if _, err := s.UserRoleDAO.DeleteByUserID(ctx, user.ID); err != nil {
			return fmt.Errorf("clear roles: %w", err)
		}
		if err := s.UserRoleDAO.Assign(ctx, user.ID, role.ID); err != nil {
			return fmt.Errorf("assign role %s: %w", authority, err)
		}
		return nil
	})
}

func (s *UserAccountService) EnableUser(ctx context.Context, user *models.User) error {
	return s.setEnabled(ctx, user, true)
}

func (s *UserAccountService) DisableUser(ctx context.Context, user *models.User) error {
	return s.setEnabled(ctx, user, false)
}

func (s *UserAccountService) setEnabled(ctx context.Context, user *models.User, enabled bool) error {
	if user == nil {
		return ErrUserRequired
	}
	if err := s.UsersRepo.UpdateEnabled(ctx, user.ID, enabled); err != nil {
		return fmt.Errorf("update user %d enabled: %w", user.ID, err)
	}
	user.Enabled = enabled

	log.L.Info("user enabled changed", zap.Uint64("user_id", user.ID), zap.Bool("enabled", enabled))
	return nil
}

// EnableUserWithActivationKey 激活码只能被绑定的未启用用户使用一次
func (s *UserAccountService) EnableUserWithActivationKey(ctx context.Context, key *models.ActivationKey, user *models.User) error {
	if key == nil {
		return ErrActivationKeyRequired
	}
	if user == nil {
		return ErrUserRequired
	}
	if user.Enabled {
		return ErrUserAlreadyEnabled
	}
	if key.UserID != user.ID {
		return ErrActivationKeyMismatch
	}

	err := database.RunInTx(ctx, s.DB, func(ctx context.Context) error {
		stored, err := s.UsersRepo.FindByID(ctx, user.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if stored.Enabled {
			return ErrUserAlreadyEnabled
		}

		consumed, err := s.ActivationKeyDAO.Consume(ctx, key)
		if err != nil {
			return fmt.Errorf("consume activation key: %w", err)
		}
		if !consumed {
			return ErrActivationKeyConsumed
		}
		return s.UsersRepo.UpdateEnabled(ctx, user.ID, true)
	})
	if err != nil {
		return err
	}
	user.Enabled = true

	log.L.Info("user activated", zap.Uint64("user_id", user.ID))
	return nil
}

// ActivateByCode 按激活码找到用户并启用
func (s *UserAccountService) ActivateByCode(ctx context.Context, code string) (*models.User, error) {
	if code == "" {
		return nil, ErrActivationKeyRequired
	}

	key, err := s.ActivationKeyDAO.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, ErrActivationKeyNotFound
	}

	user, err := s.GetUser(ctx, key.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.EnableUserWithActivationKey(ctx, key, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePasswordForUser 传入的总是明文，这里直接加密，不依赖 BeforeSave 的密文判断
func (s *UserAccountService) UpdatePasswordForUser(ctx context.Context, user *models.User, password string) error {
	if user == nil {
		return ErrUserRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}

	hashed, err := encrypt.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hashed
	if err := s.UsersRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("save password: %w", err)
	}

	log.L.Info("password updated", zap.Uint64("user_id", user.ID))
	return nil
}

func (s *UserAccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.FindByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !encrypt.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, ErrUserDisabled
	}
	return user, nil
}

func (s *UserAccountService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.UsersRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserAccountService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.UsersRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserAccountService) HasRole(ctx context.Context, user *models.User, authority string) (bool, error) {
	if user == nil {
		return false, ErrUserRequired
	}
	return s.UserRoleDAO.HasAuthority(ctx, user.ID, authority)
}
