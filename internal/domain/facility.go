package domain

type FacilityType string

const (
	FacilityHospital     FacilityType = "hospital"
	FacilityHealthCenter FacilityType = "health_center"
	FacilityClinic       FacilityType = "clinic"
	FacilityPharmacy     FacilityType = "pharmacy"
	FacilityLaboratory   FacilityType = "laboratory"
)

// Valid reports whether t is one of the known facility types.
func (t FacilityType) Valid() bool {
	switch t {
	case FacilityHospital, FacilityHealthCenter, FacilityClinic, FacilityPharmacy, FacilityLaboratory:
		return true
	}
	return false
}

type Facility struct {
	ID                string       `json:"id" yaml:"id"`
	Name              string       `json:"name" yaml:"name"`
	Type              FacilityType `json:"type" yaml:"type"`
	Barangay          string       `json:"barangay" yaml:"barangay"`
	Address           string       `json:"address" yaml:"address"`
	Phone             string       `json:"phone,omitempty" yaml:"phone"`
	Hours             string       `json:"hours,omitempty" yaml:"hours"`
	Services          []string     `json:"services" yaml:"services"`
	Latitude          float64      `json:"latitude" yaml:"latitude"`
	Longitude         float64      `json:"longitude" yaml:"longitude"`
	Is24Hours         bool         `json:"is_24_hours" yaml:"is_24_hours"`
	AcceptsPhilHealth bool         `json:"accepts_philhealth" yaml:"accepts_philhealth"`
}

// FacilityFilter selecciona facilities; los campos vacios no filtran.
type FacilityFilter struct {
	Type       FacilityType
	Barangay   string
	Service    string
	Open24     *bool
	PhilHealth *bool
}
