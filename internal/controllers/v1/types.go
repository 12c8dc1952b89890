package v1

import (
	rd_uuid "github.com/racedesk/backend/internal/uuid"
)

type URIID struct {
	ID rd_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}
