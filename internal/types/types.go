// =============================================================================
// Deposition Species Injector - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - classifier
//   - validation
//   - xmlwriter
//   - xlsxreport
//
// =============================================================================

package types

// =============================================================================
// DEPOSITION CATEGORIES
// =============================================================================

// Category identifies one of the four deposition lists.
type Category int

const (
	// GasDry holds gas-phase species removed by dry deposition.
	GasDry Category = iota

	// GasWet holds gas-phase species removed by wet deposition.
	GasWet

	// AerDry holds aerosol species removed by dry deposition.
	AerDry

	// AerWet holds aerosol species removed by wet deposition.
	AerWet
)

// Categories lists every category in the order they are reported.
var Categories = []Category{GasDry, GasWet, AerDry, AerWet}

// String returns the human-readable category name.
func (c Category) String() string {
	switch c {
	case GasDry:
		return "GasDryDep"
	case GasWet:
		return "GasWetDep"
	case AerDry:
		return "AerDryDep"
	case AerWet:
		return "AerWetDep"
	default:
		return "Unknown"
	}
}

// Tag returns the XML element whose text receives the category's list.
func (c Category) Tag() string {
	switch c {
	case GasDry:
		return "drydep_list"
	case GasWet:
		return "gas_wetdep_list"
	case AerDry:
		return "aer_drydep_list"
	case AerWet:
		return "aer_wetdep_list"
	default:
		return ""
	}
}

// CategoryForTag maps an XML element tag back to its category.
// The second return value is false for tags that are not injection targets.
func CategoryForTag(tag string) (Category, bool) {
	for _, c := range Categories {
		if c.Tag() == tag {
			return c, true
		}
	}
	return 0, false
}

// =============================================================================
// DEPOSITION LISTS
// =============================================================================

// DepositionLists holds the four ordered species lists produced by the
// classifier. Names keep their source casing; uppercasing happens when the
// lists are formatted for output.
type DepositionLists struct {
	// GasDry contains gas species with dry deposition enabled.
	GasDry []string

	// GasWet contains gas species with wet deposition enabled.
	GasWet []string

	// AerDry contains aerosol species with dry deposition enabled.
	AerDry []string

	// AerWet contains aerosol species with wet deposition enabled.
	AerWet []string
}

// Get returns the list for a category.
func (l DepositionLists) Get(c Category) []string {
	switch c {
	case GasDry:
		return l.GasDry
	case GasWet:
		return l.GasWet
	case AerDry:
		return l.AerDry
	case AerWet:
		return l.AerWet
	default:
		return nil
	}
}

// Total returns the number of entries across all four lists.
func (l DepositionLists) Total() int {
	return len(l.GasDry) + len(l.GasWet) + len(l.AerDry) + len(l.AerWet)
}
