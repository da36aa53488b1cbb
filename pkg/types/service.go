package types

import "strings"

// Service field keys.
const (
	ServiceName        = "name"
	ServiceDescription = "description"
	ServicePrice       = "price"
	ServiceDuration    = "duration_minutes"
	ServiceStatus      = "status"
)

// Service is a bookable service offered in the storefront.
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
}

func (s Service) GetID() int64 { return s.ID }

func (s Service) WithID(id int64) Service {
	s.ID = id
	return s
}

func (s Service) Field(key string) (any, bool) {
	switch key {
	case "id":
		return s.ID, true
	case ServiceName:
		return s.Name, true
	case ServiceDescription:
		return s.Description, true
	case ServicePrice:
		return s.Price, true
	case ServiceDuration:
		return s.DurationMinutes, true
	case ServiceStatus:
		return s.Status, true
	default:
		return nil, false
	}
}

func (s Service) Values() Values {
	return Values{
		ServiceName:        s.Name,
		ServiceDescription: s.Description,
		ServicePrice:       formatFloat(s.Price),
		ServiceDuration:    formatInt(s.DurationMinutes),
		ServiceStatus:      s.Status,
	}
}

// Apply returns a copy of s with every field present in v overwritten.
func (s Service) Apply(v Values) (Service, error) {
	for key, val := range v {
		var err error
		switch key {
		case ServiceName:
			s.Name = strings.TrimSpace(val)
		case ServiceDescription:
			s.Description = strings.TrimSpace(val)
		case ServicePrice:
			s.Price, err = parseFloat(key, val)
		case ServiceDuration:
			s.DurationMinutes, err = parseInt(key, val)
		case ServiceStatus:
			s.Status = strings.TrimSpace(val)
		}
		if err != nil {
			return Service{}, err
		}
	}
	return s, nil
}
