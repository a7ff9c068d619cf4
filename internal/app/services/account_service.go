package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/errors"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/models"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/infrastructures"
	"github.com/chaimkastel/happy-hour-app-sub002/pkg/apikey"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const apiKeyCacheTTL = 5 * time.Minute

type AccountService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
	redis     *redis.Client
}

func NewAccountService(db *gorm.DB, validator *infrastructures.Validator, redis *redis.Client) *AccountService {
	return &AccountService{
		db:        db,
		validator: validator,
		redis:     redis,
	}
}

// CreateAccount provisions an account and its API key. The plaintext key is
// returned exactly once.
func (s *AccountService) CreateAccount(req *models.AccountCreateRequest) (*models.AccountProvisionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var existingAccount models.Account
	err := s.db.Where("email = ?", req.Email).First(&existingAccount).Error
	if err == nil {
		return nil, errors.NewConflictError("Account with this email already exists")
	}

	key, err := apikey.Generate(apikey.Prefix)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to generate API key")
	}

	account := &models.Account{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		APIKey:      key,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create account")
	}

	return &models.AccountProvisionResponse{
		Account: account,
		APIKey:  key,
	}, nil
}

func (s *AccountService) GetAccount(accountId string) (*models.Account, error) {
	accountUUID, err := uuid.Parse(accountId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid account ID format")
	}

	var account models.Account
	err = s.db.Where("id = ?", accountUUID).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Account not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get account")
	}

	return &account, nil
}

// GetAccountByAPIKey resolves an API key to an account. Lookups are cached in
// Redis for a short TTL since every authenticated request pays this cost.
func (s *AccountService) GetAccountByAPIKey(key string) (*models.Account, error) {
	if !apikey.HasPrefix(key, apikey.Prefix) {
		return nil, errors.NewUnauthorizedError("Invalid API key")
	}

	ctx := context.Background()
	cacheKey := s.apiKeyCacheKey(key)

	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var account models.Account
		if err := json.Unmarshal([]byte(cached), &account); err == nil {
			return &account, nil
		}
	}

	var account models.Account
	err := s.db.Where("api_key = ?", key).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewUnauthorizedError("Invalid API key")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get account")
	}

	if encoded, err := json.Marshal(&account); err == nil {
		s.redis.Set(ctx, cacheKey, encoded, apiKeyCacheTTL)
	}

	return &account, nil
}

func (s *AccountService) GetAccounts(pagination *models.PaginationRequest) (*models.Pagination[[]models.Account], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	var totalItems int64
	if err := s.db.Model(&models.Account{}).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count accounts")
	}

	var accounts []models.Account
	err := s.db.Order("created_at DESC").Limit(pagination.Limit).Offset(offset).Find(&accounts).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get accounts")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.Account]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      accounts,
	}, nil
}

func (s *AccountService) UpdateAccount(accountId string, req *models.AccountUpdateRequest) (*models.Account, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	account, err := s.GetAccount(accountId)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		account.DisplayName = *req.DisplayName
	}
	if req.Role != nil {
		account.Role = *req.Role
	}

	if err := s.db.Save(account).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update account")
	}

	s.invalidateAPIKeyCache(account.APIKey)

	return account, nil
}

func (s *AccountService) DeleteAccount(accountId string) error {
	account, err := s.GetAccount(accountId)
	if err != nil {
		return err
	}

	if err := s.db.Delete(account).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete account")
	}

	s.invalidateAPIKeyCache(account.APIKey)

	return nil
}

func (s *AccountService) apiKeyCacheKey(key string) string {
	return fmt.Sprintf("happyhour:apikey:%s", key)
}

func (s *AccountService) invalidateAPIKeyCache(key string) {
	s.redis.Del(context.Background(), s.apiKeyCacheKey(key))
}
