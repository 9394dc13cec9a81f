package domain

type EmergencyContact struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Number      string `json:"number" yaml:"number"`
	Description string `json:"description,omitempty" yaml:"description"`
}
