package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nagacare/internal/domain"
	"nagacare/internal/intent"
)

var (
	facilityType     string
	facilityBarangay string
	facilityService  string
	searchLimit      int
	contactCategory  string
)

var facilitiesCmd = &cobra.Command{
	Use:   "facilities",
	Short: "List health facilities",
	Args:  cobra.NoArgs,
	RunE:  runFacilities,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search facilities by name or service",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var barangaysCmd = &cobra.Command{
	Use:   "barangays",
	Short: "List barangay demographics",
	Args:  cobra.NoArgs,
	RunE:  runBarangays,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show city-wide demographic totals",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List emergency contacts",
	Args:  cobra.NoArgs,
	RunE:  runContacts,
}

var dialCmd = &cobra.Command{
	Use:   "dial <contact-id>",
	Short: "Print the tel: URI for an emergency contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runDial,
}

func runFacilities(cmd *cobra.Command, args []string) error {
	filter := domain.FacilityFilter{
		Type:     domain.FacilityType(strings.ToLower(strings.TrimSpace(facilityType))),
		Barangay: facilityBarangay,
		Service:  facilityService,
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return fmt.Errorf("unknown facility type %q", facilityType)
	}
	return printFacilities(cmd.OutOrStdout(), dir.Facilities(filter))
}

func runSearch(cmd *cobra.Command, args []string) error {
	return printFacilities(cmd.OutOrStdout(), dir.Search(strings.Join(args, " "), searchLimit))
}

func runBarangays(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	barangays := dir.Barangays()
	if asJSON {
		return writeJSON(out, barangays)
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BARANGAY\tDISTRICT\tPOPULATION\tHOUSEHOLDS\tSENIORS\tCHILDREN\tPHILHEALTH")
	for _, b := range barangays {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			b.Name, b.District, b.Population, b.Households, b.Seniors, b.Children, b.PhilHealthMembers)
	}
	return w.Flush()
}

func runSummary(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s := dir.Summary()
	if asJSON {
		return writeJSON(out, s)
	}
	fmt.Fprintf(out, "Barangays:          %d\n", s.Barangays)
	fmt.Fprintf(out, "Population:         %d\n", s.Population)
	fmt.Fprintf(out, "Households:         %d\n", s.Households)
	fmt.Fprintf(out, "Male / Female:      %d / %d\n", s.Male, s.Female)
	fmt.Fprintf(out, "Seniors:            %d\n", s.Seniors)
	fmt.Fprintf(out, "Children:           %d\n", s.Children)
	fmt.Fprintf(out, "PhilHealth members: %d (%.1f%%)\n", s.PhilHealthMembers, s.PhilHealthCoverage)
	return nil
}

func runContacts(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	contacts := dir.Contacts(contactCategory)
	if asJSON {
		return writeJSON(out, contacts)
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tNUMBER")
	for _, c := range contacts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Category, c.Number)
	}
	return w.Flush()
}

func runDial(cmd *cobra.Command, args []string) error {
	contact, err := dir.Contact(args[0])
	if err != nil {
		return err
	}
	uri, err := intent.DialURI(contact.Number)
	if err != nil {
		return fmt.Errorf("%s: %w", contact.ID, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), uri)
	return nil
}

func printFacilities(out io.Writer, facilities []domain.Facility) error {
	if asJSON {
		return writeJSON(out, facilities)
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tBARANGAY\tPHONE\t24H")
	for _, f := range facilities {
		open := ""
		if f.Is24Hours {
			open = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", f.ID, f.Name, f.Type, f.Barangay, f.Phone, open)
	}
	return w.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
