// =============================================================================
// Deposition Species Injector - Classifier Module
// =============================================================================
//
// This module partitions the species of a species database into the four
// deposition lists written to geoschem.xml.
//
// CLASSIFICATION RULES:
//   For every species whose key does not contain "_PROP":
//     Is_Gas && Is_DryDep   -> GasDry
//     Is_Gas && Is_WetDep   -> GasWet
//     !Is_Gas && Is_DryDep  -> AerDry
//     !Is_Gas && Is_WetDep  -> AerWet
//
//   A property counts only when it is present and equal to boolean true.
//   A species lands in at most one dry list and at most one wet list.
//
// AEROSOL PRESET:
//   When Options.AerosolPreset is set, AerDry and AerWet are seeded from the
//   catalogue and the database is only used for the gas lists.
//
// =============================================================================

package classifier

import (
	"github.com/ginjaninja78/depspec/internal/speciesdb"
	"github.com/ginjaninja78/depspec/internal/types"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls classification.
type Options struct {
	// AerosolPreset replaces database-derived aerosol lists with Catalogue.
	AerosolPreset bool

	// Catalogue is the aerosol species list used when AerosolPreset is set.
	// Nil selects the MAM4 catalogue.
	Catalogue []string
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Flags is the deposition-relevant view of one species.
type Flags struct {
	Gas    bool
	DryDep bool
	WetDep bool
}

// FlagsOf extracts the three deposition flags from a record.
func FlagsOf(r *speciesdb.Record) Flags {
	return Flags{
		Gas:    r.Flag(speciesdb.PropIsGas),
		DryDep: r.Flag(speciesdb.PropIsDryDep),
		WetDep: r.Flag(speciesdb.PropIsWetDep),
	}
}

// Classify builds the four deposition lists from a database.
//
// PARAMETERS:
//   - db: The loaded species database. A nil database yields empty lists
//     (or just the catalogue when the preset is on).
//   - opts: Classification options.
//
// RETURNS:
//   - The four lists in database order. Names keep their source casing.
func Classify(db *speciesdb.Database, opts Options) types.DepositionLists {
	lists := types.DepositionLists{
		GasDry: []string{},
		GasWet: []string{},
		AerDry: []string{},
		AerWet: []string{},
	}

	if opts.AerosolPreset {
		catalogue := opts.Catalogue
		if catalogue == nil {
			catalogue = mam4Species
		}
		lists.AerDry = append(lists.AerDry, catalogue...)
		lists.AerWet = append(lists.AerWet, catalogue...)
	}

	if db == nil {
		return lists
	}

	for _, record := range db.Records() {
		if record.IsMetadata() {
			continue
		}

		f := FlagsOf(record)

		if f.Gas {
			if f.DryDep {
				lists.GasDry = append(lists.GasDry, record.Name)
			}
			if f.WetDep {
				lists.GasWet = append(lists.GasWet, record.Name)
			}
			continue
		}

		// Aerosol lists come from the catalogue alone in preset mode.
		if opts.AerosolPreset {
			continue
		}
		if f.DryDep {
			lists.AerDry = append(lists.AerDry, record.Name)
		}
		if f.WetDep {
			lists.AerWet = append(lists.AerWet, record.Name)
		}
	}

	return lists
}
