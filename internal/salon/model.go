package salon

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "salon not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "salon name is required")
)

// Salon is a venue where workers provide services.
type Salon struct {
	ID          string
	Name        string
	Description string
	Address     string
	CreatedAt   time.Time
}

// Filter defines parameters for listing salons.
type Filter struct {
	Name     string // case-insensitive substring
	Page     int
	PageSize int
}
