package service

import (
	"context"
	"encoding/json"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// writeAuditLog records who changed what. Best-effort — a failed audit
// insert never fails the operation it describes.
func writeAuditLog(ctx context.Context, db *gorm.DB, userID, action, entityID, entityName string, details interface{}) {
	detailsJSON, _ := json.Marshal(details)

	entry := model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}

	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			entry.UserID = &parsed
		}
	}

	_ = db.WithContext(ctx).Create(&entry).Error
}
