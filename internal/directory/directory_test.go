package directory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nagacare/internal/domain"
)

func loadBundled(t *testing.T) *Directory {
	t.Helper()
	d, err := Load()
	require.NoError(t, err)
	return d
}

func TestLoad_BundledTables(t *testing.T) {
	d := loadBundled(t)

	require.Len(t, d.Facilities(domain.FacilityFilter{}), 12)
	require.Len(t, d.Barangays(), 27)
	require.Len(t, d.Contacts(""), 8)
}

func TestFacilities_SortedAndFiltered(t *testing.T) {
	d := loadBundled(t)

	all := d.Facilities(domain.FacilityFilter{})
	for i := 1; i < len(all); i++ {
		require.LessOrEqual(t, all[i-1].Name, all[i].Name)
	}

	hospitals := d.Facilities(domain.FacilityFilter{Type: domain.FacilityHospital})
	require.Len(t, hospitals, 4)

	yes := true
	no := false
	open24 := d.Facilities(domain.FacilityFilter{Open24: &yes})
	for _, f := range open24 {
		require.True(t, f.Is24Hours, f.ID)
	}
	require.Len(t, open24, 5)

	private := d.Facilities(domain.FacilityFilter{Type: domain.FacilityHospital, PhilHealth: &no})
	require.Len(t, private, 1)
	require.Equal(t, "naga-doctors", private[0].ID)

	inPacol := d.Facilities(domain.FacilityFilter{Barangay: " pacol "})
	require.Len(t, inPacol, 1)
	require.Equal(t, "bhs-pacol", inPacol[0].ID)

	dialysis := d.Facilities(domain.FacilityFilter{Service: "Dialysis"})
	require.Len(t, dialysis, 1)
	require.Equal(t, "bmc", dialysis[0].ID)
}

func TestFacility_LookupReturnsCopy(t *testing.T) {
	d := loadBundled(t)

	f, err := d.Facility("bmc")
	require.NoError(t, err)
	require.Equal(t, "Bicol Medical Center", f.Name)

	f.Services[0] = "tampered"
	again, err := d.Facility("bmc")
	require.NoError(t, err)
	require.Equal(t, "emergency", again.Services[0])

	_, err = d.Facility("missing")
	require.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestBarangay_Lookup(t *testing.T) {
	d := loadBundled(t)

	b, err := d.Barangay("  CONCEPCION PEQUEÑA ")
	require.NoError(t, err)
	require.Equal(t, 24510, b.Population)

	_, err = d.Barangay("Atlantis")
	require.ErrorIs(t, err, ErrBarangayNotFound)
}

func TestSummary(t *testing.T) {
	d := loadBundled(t)

	s := d.Summary()
	require.Equal(t, 27, s.Barangays)
	require.Equal(t, 259610, s.Population)
	require.Equal(t, 59120, s.Households)
	require.Equal(t, s.Population, s.Male+s.Female)
	require.InDelta(t, 71.0, s.PhilHealthCoverage, 0.1)
}

func TestSummary_EmptyPopulation(t *testing.T) {
	d, err := Parse([]byte("facilities: []"), []byte("barangays:\n  - name: Empty\n"), []byte("contacts: []"))
	require.NoError(t, err)

	s := d.Summary()
	require.Equal(t, 1, s.Barangays)
	require.Zero(t, s.PhilHealthCoverage)
}

func TestContacts(t *testing.T) {
	d := loadBundled(t)

	medical := d.Contacts("Medical")
	require.Len(t, medical, 3)

	c, err := d.Contact("naga-911")
	require.NoError(t, err)
	require.Equal(t, "911", c.Number)

	_, err = d.Contact("nope")
	require.ErrorIs(t, err, ErrContactNotFound)
}

func TestSearch(t *testing.T) {
	d := loadBundled(t)

	byName := d.Search("seton", 0)
	require.NotEmpty(t, byName)
	require.Equal(t, "mother-seton", byName[0].ID)

	byService := d.Search("x-ray", 0)
	ids := make([]string, 0, len(byService))
	for _, f := range byService {
		ids = append(ids, f.ID)
	}
	require.ElementsMatch(t, []string{"ncgh", "naga-lab"}, ids)

	typo := d.Search("bicl medical", 0)
	require.NotEmpty(t, typo)
	require.Equal(t, "bmc", typo[0].ID)

	limited := d.Search("health", 2)
	require.Len(t, limited, 2)

	require.Empty(t, d.Search("   ", 5))
	require.Empty(t, d.Search("zz", 5))
}

func TestParse_Validation(t *testing.T) {
	cases := map[string]struct {
		facilities string
		barangays  string
	}{
		"unknown type": {
			facilities: "facilities:\n  - {id: a, name: A, type: spa}\n",
			barangays:  "barangays: []",
		},
		"duplicate facility": {
			facilities: "facilities:\n  - {id: a, name: A, type: clinic}\n  - {id: a, name: B, type: clinic}\n",
			barangays:  "barangays: []",
		},
		"duplicate barangay": {
			facilities: "facilities: []",
			barangays:  "barangays:\n  - {name: Sabang}\n  - {name: sabang}\n",
		},
		"unknown health center": {
			facilities: "facilities: []",
			barangays:  "barangays:\n  - {name: Sabang, health_center_id: ghost}\n",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.facilities), []byte(tc.barangays), []byte("contacts: []"))
			require.Error(t, err)
		})
	}
}

func TestOffers(t *testing.T) {
	f := domain.Facility{Services: []string{"Prenatal Care", "immunization"}}
	require.True(t, Offers(f, "prenatal care"))
	require.False(t, Offers(f, "prenatal"))
}
