package domain

import (
	"time"
)

type Service struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Duration  int       `json:"duration"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Length is the service duration as a time.Duration; Duration is stored in minutes.
func (s Service) Length() time.Duration {
	return time.Duration(s.Duration) * time.Minute
}

type CreateServiceDTO struct {
	Name     string   `json:"name" binding:"required,max=100"`
	Duration int      `json:"duration" binding:"required,gt=0"`
	Price    *float64 `json:"price" binding:"required,gte=0"`
}

type UpdateServiceDTO struct {
	Name     *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Duration *int     `json:"duration" binding:"omitempty,gt=0"`
	Price    *float64 `json:"price" binding:"omitempty,gte=0"`
}
