package submission

import (
	"gorm.io/datatypes"
)

// TableName is the table submitted models are stored in.
const TableName = "chat_results"

// Columns lists the columns the submissions table must have.
var Columns = []string{"id", "created_at", "data"}

// ChatResult is one submitted pricing model.
type ChatResult struct {
	ID        string         `gorm:"column:id;primaryKey;size:26" json:"id"`
	CreatedAt int64          `gorm:"column:created_at;autoCreateTime:milli" json:"created_at"`
	Data      datatypes.JSON `gorm:"column:data" json:"pricing_model"`
}

// TableName sets the table name for GORM.
func (ChatResult) TableName() string {
	return TableName
}
