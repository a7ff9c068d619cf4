package services

import (
	"encoding/json"
	"time"

	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/errors"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		db: db,
	}
}

// LogAudit records a change for the admin monitoring views. Best effort: a
// failed audit write is logged but never fails the operation being audited.
func (s *AuditService) LogAudit(tableName string, recordID uuid.UUID, action models.AuditAction, oldData, newData interface{}, changedBy *uuid.UUID) {
	var oldDataJSON, newDataJSON *string

	if oldData != nil {
		if jsonBytes, err := json.Marshal(oldData); err == nil {
			strJSON := string(jsonBytes)
			oldDataJSON = &strJSON
		}
	}

	if newData != nil {
		if jsonBytes, err := json.Marshal(newData); err == nil {
			strJSON := string(jsonBytes)
			newDataJSON = &strJSON
		}
	}

	auditLog := &models.AuditLog{
		TableName: tableName,
		RecordID:  recordID,
		Action:    action,
		OldData:   oldDataJSON,
		NewData:   newDataJSON,
		ChangedBy: changedBy,
		ChangedAt: time.Now(),
	}

	if err := s.db.Create(auditLog).Error; err != nil {
		logrus.Errorf("failed to create audit log for %s/%s: %v", tableName, recordID, err)
	}
}

// GetAuditLogs retrieves audit logs with pagination
func (s *AuditService) GetAuditLogs(pagination *models.PaginationRequest) (*models.Pagination[[]models.AuditLog], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	var totalItems int64
	if err := s.db.Model(&models.AuditLog{}).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count audit logs")
	}

	var logs []models.AuditLog
	query := s.db.Order("changed_at DESC")

	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&logs).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audit logs")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.AuditLog]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      logs,
	}, nil
}
