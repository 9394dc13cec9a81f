package domain

type Barangay struct {
	Name              string `json:"name" yaml:"name"`
	District          string `json:"district" yaml:"district"`
	Population        int    `json:"population" yaml:"population"`
	Households        int    `json:"households" yaml:"households"`
	Male              int    `json:"male" yaml:"male"`
	Female            int    `json:"female" yaml:"female"`
	Seniors           int    `json:"seniors" yaml:"seniors"`
	Children          int    `json:"children" yaml:"children"`
	PhilHealthMembers int    `json:"philhealth_members" yaml:"philhealth_members"`
	HealthCenterID    string `json:"health_center_id,omitempty" yaml:"health_center_id"`
}

// DemographicSummary agrega los barangays de la ciudad.
type DemographicSummary struct {
	Barangays          int     `json:"barangays"`
	Population         int     `json:"population"`
	Households         int     `json:"households"`
	Male               int     `json:"male"`
	Female             int     `json:"female"`
	Seniors            int     `json:"seniors"`
	Children           int     `json:"children"`
	PhilHealthMembers  int     `json:"philhealth_members"`
	PhilHealthCoverage float64 `json:"philhealth_coverage"`
}
