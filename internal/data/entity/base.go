package entity

import (
	"time"

	"github.com/google/uuid"
)

type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedOn time.Time `db:"created_on"`
}
