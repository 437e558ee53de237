package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActivityLog is one journaled dashboard mutation
type ActivityLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SessionID string    `gorm:"type:varchar(64);index" json:"session_id,omitempty"`
	UserID    string    `gorm:"type:varchar(64);index" json:"user_id,omitempty"`
	Username  string    `gorm:"type:varchar(150)" json:"username,omitempty"`
	Kind      string    `gorm:"type:varchar(50);not null;index" json:"kind"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	RecordID  string    `gorm:"type:varchar(64);index" json:"record_id,omitempty"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Journaled actions
const (
	ActivityActionCreate     = "create"
	ActivityActionUpdate     = "update"
	ActivityActionStatus     = "status"
	ActivityActionDeactivate = "deactivate"
	ActivityActionDischarge  = "discharge"
	ActivityActionLogin      = "login"
	ActivityActionLogout     = "logout"
)
