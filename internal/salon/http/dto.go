package http

import (
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/salon-booking-backend/internal/salon"
)

type SalonResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

// SalonTag is a brief representation of a salon embedded in booking views.
type SalonTag struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func NewSalonResponse(s *salon.Salon) SalonResponse {
	return SalonResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt,
	}
}

func NewSalonTag(s *salon.Salon) *SalonTag {
	if s == nil {
		return nil
	}
	return &SalonTag{ID: s.ID, Name: s.Name, Address: s.Address}
}

type CreateSalonRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Address     string `json:"address" binding:"max=500"`
}

type ListSalonsRequest struct {
	request.ListParams
	Name string `form:"name" binding:"omitempty,max=200"`
}
