package entity

// ServiceOffering is an entry of the static service catalog. The catalog is
// immutable reference data; bookings copy a snapshot of the chosen entry.
type ServiceOffering struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration"`
	Price           float64 `json:"price"`
}

var serviceCatalog = []*ServiceOffering{
	{ID: 1, Name: "Consultation", Description: "One-on-one consultation session", DurationMinutes: 60, Price: 99.99},
	{ID: 2, Name: "Workshop", Description: "Interactive group workshop", DurationMinutes: 120, Price: 149.99},
	{ID: 3, Name: "Quick Session", Description: "30-minute focused session", DurationMinutes: 30, Price: 49.99},
}

func ServiceCatalog() []*ServiceOffering {
	return serviceCatalog
}

func ServiceByID(id int64) *ServiceOffering {
	for _, s := range serviceCatalog {
		if s.ID == id {
			return s
		}
	}
	return nil
}
