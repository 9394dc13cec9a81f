// Package directory serves the bundled, read-only reference tables: health
// facilities, barangay demographics and emergency contacts.
package directory

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"nagacare/internal/domain"
)

//go:embed data/*.yaml
var bundled embed.FS

var (
	ErrFacilityNotFound = errors.New("facility not found")
	ErrBarangayNotFound = errors.New("barangay not found")
	ErrContactNotFound  = errors.New("emergency contact not found")
)

// Directory is immutable after Load; every accessor returns copies.
type Directory struct {
	facilities []domain.Facility
	facilityIx map[string]int
	barangays  []domain.Barangay
	barangayIx map[string]int
	contacts   []domain.EmergencyContact
	contactIx  map[string]int
}

type facilitiesFile struct {
	Facilities []domain.Facility `yaml:"facilities"`
}

type barangaysFile struct {
	Barangays []domain.Barangay `yaml:"barangays"`
}

type contactsFile struct {
	Contacts []domain.EmergencyContact `yaml:"contacts"`
}

// Load parses the tables bundled into the binary.
func Load() (*Directory, error) {
	facilities, err := bundled.ReadFile("data/facilities.yaml")
	if err != nil {
		return nil, err
	}
	barangays, err := bundled.ReadFile("data/barangays.yaml")
	if err != nil {
		return nil, err
	}
	contacts, err := bundled.ReadFile("data/contacts.yaml")
	if err != nil {
		return nil, err
	}
	return Parse(facilities, barangays, contacts)
}

// Parse builds a Directory from the three YAML documents and validates cross references.
func Parse(facilitiesYAML, barangaysYAML, contactsYAML []byte) (*Directory, error) {
	var ff facilitiesFile
	if err := yaml.Unmarshal(facilitiesYAML, &ff); err != nil {
		return nil, fmt.Errorf("parse facilities: %w", err)
	}
	var bf barangaysFile
	if err := yaml.Unmarshal(barangaysYAML, &bf); err != nil {
		return nil, fmt.Errorf("parse barangays: %w", err)
	}
	var cf contactsFile
	if err := yaml.Unmarshal(contactsYAML, &cf); err != nil {
		return nil, fmt.Errorf("parse contacts: %w", err)
	}

	d := &Directory{
		facilityIx: make(map[string]int, len(ff.Facilities)),
		barangayIx: make(map[string]int, len(bf.Barangays)),
		contactIx:  make(map[string]int, len(cf.Contacts)),
	}

	for _, f := range ff.Facilities {
		f.ID = strings.TrimSpace(f.ID)
		if f.ID == "" || strings.TrimSpace(f.Name) == "" {
			return nil, fmt.Errorf("facility %q: id and name are required", f.Name)
		}
		if !f.Type.Valid() {
			return nil, fmt.Errorf("facility %s: unknown type %q", f.ID, f.Type)
		}
		if _, dup := d.facilityIx[f.ID]; dup {
			return nil, fmt.Errorf("facility %s: duplicate id", f.ID)
		}
		d.facilityIx[f.ID] = len(d.facilities)
		d.facilities = append(d.facilities, f)
	}
	sort.SliceStable(d.facilities, func(i, j int) bool {
		return d.facilities[i].Name < d.facilities[j].Name
	})
	for i, f := range d.facilities {
		d.facilityIx[f.ID] = i
	}

	for _, b := range bf.Barangays {
		key := normalize(b.Name)
		if key == "" {
			return nil, errors.New("barangay without name")
		}
		if _, dup := d.barangayIx[key]; dup {
			return nil, fmt.Errorf("barangay %s: duplicate name", b.Name)
		}
		if b.HealthCenterID != "" {
			if _, ok := d.facilityIx[b.HealthCenterID]; !ok {
				return nil, fmt.Errorf("barangay %s: unknown health center %q", b.Name, b.HealthCenterID)
			}
		}
		d.barangays = append(d.barangays, b)
		d.barangayIx[key] = -1
	}
	sort.SliceStable(d.barangays, func(i, j int) bool {
		return d.barangays[i].Name < d.barangays[j].Name
	})
	for i, b := range d.barangays {
		d.barangayIx[normalize(b.Name)] = i
	}

	for _, c := range cf.Contacts {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" || strings.TrimSpace(c.Number) == "" {
			return nil, fmt.Errorf("contact %q: id and number are required", c.Name)
		}
		if _, dup := d.contactIx[c.ID]; dup {
			return nil, fmt.Errorf("contact %s: duplicate id", c.ID)
		}
		d.contactIx[c.ID] = len(d.contacts)
		d.contacts = append(d.contacts, c)
	}

	return d, nil
}

// Facilities returns the facilities matching filter, sorted by name.
func (d *Directory) Facilities(filter domain.FacilityFilter) []domain.Facility {
	out := make([]domain.Facility, 0, len(d.facilities))
	for _, f := range d.facilities {
		if matches(f, filter) {
			out = append(out, copyFacility(f))
		}
	}
	return out
}

func (d *Directory) Facility(id string) (domain.Facility, error) {
	i, ok := d.facilityIx[strings.TrimSpace(id)]
	if !ok {
		return domain.Facility{}, ErrFacilityNotFound
	}
	return copyFacility(d.facilities[i]), nil
}

// Barangays returns every barangay sorted by name.
func (d *Directory) Barangays() []domain.Barangay {
	return append([]domain.Barangay(nil), d.barangays...)
}

// Barangay looks a barangay up by name, ignoring case and surrounding space.
func (d *Directory) Barangay(name string) (domain.Barangay, error) {
	i, ok := d.barangayIx[normalize(name)]
	if !ok {
		return domain.Barangay{}, ErrBarangayNotFound
	}
	return d.barangays[i], nil
}

// Summary aggregates the demographic figures of every barangay.
func (d *Directory) Summary() domain.DemographicSummary {
	var s domain.DemographicSummary
	for _, b := range d.barangays {
		s.Barangays++
		s.Population += b.Population
		s.Households += b.Households
		s.Male += b.Male
		s.Female += b.Female
		s.Seniors += b.Seniors
		s.Children += b.Children
		s.PhilHealthMembers += b.PhilHealthMembers
	}
	if s.Population > 0 {
		s.PhilHealthCoverage = float64(s.PhilHealthMembers) * 100 / float64(s.Population)
	}
	return s
}

// Contacts returns the emergency contacts, optionally restricted to one category.
func (d *Directory) Contacts(category string) []domain.EmergencyContact {
	category = normalize(category)
	out := make([]domain.EmergencyContact, 0, len(d.contacts))
	for _, c := range d.contacts {
		if category != "" && normalize(c.Category) != category {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (d *Directory) Contact(id string) (domain.EmergencyContact, error) {
	i, ok := d.contactIx[strings.TrimSpace(id)]
	if !ok {
		return domain.EmergencyContact{}, ErrContactNotFound
	}
	return d.contacts[i], nil
}

func matches(f domain.Facility, filter domain.FacilityFilter) bool {
	if filter.Type != "" && f.Type != filter.Type {
		return false
	}
	if b := normalize(filter.Barangay); b != "" && normalize(f.Barangay) != b {
		return false
	}
	if filter.Open24 != nil && f.Is24Hours != *filter.Open24 {
		return false
	}
	if filter.PhilHealth != nil && f.AcceptsPhilHealth != *filter.PhilHealth {
		return false
	}
	if s := normalize(filter.Service); s != "" {
		return offers(f, s)
	}
	return true
}

// offers reports whether f lists a service containing the normalized term s.
func offers(f domain.Facility, s string) bool {
	for _, svc := range f.Services {
		if strings.Contains(normalize(svc), s) {
			return true
		}
	}
	return false
}

// Offers reports whether the facility lists the named service.
func Offers(f domain.Facility, service string) bool {
	s := normalize(service)
	for _, svc := range f.Services {
		if normalize(svc) == s {
			return true
		}
	}
	return false
}

func copyFacility(f domain.Facility) domain.Facility {
	f.Services = append([]string(nil), f.Services...)
	return f
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
