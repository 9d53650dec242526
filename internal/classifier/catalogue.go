package classifier

// mam4Species is the aerosol tracer catalogue of the four-mode Modal Aerosol
// Module. Entries are mode-resolved (_a1 .. _a7) dust, sulfate, ammonium,
// organic and black carbon, sea salt and number-concentration tracers,
// followed by secondary organic aerosol tracers split by source sector
// (ff = fossil fuel, bb = biomass burning, bg = biogenic).
//
// When the aerosol preset is enabled this catalogue replaces the aerosol
// lists derived from the species database.
var mam4Species = []string{
	"dst_a1", "so4_a1", "nh4_a1", "pom_a1", "pomff1_a1", "pombb1_a1", "soa_a1", "bc_a1", "ncl_a1", "num_a1",
	"so4_a2", "nh4_a2", "soa_a2", "ncl_a2", "dst_a2", "num_a2",
	"dst_a3", "ncl_a3", "so4_a3", "pom_a3", "bc_a3", "num_a3",
	"ncl_a4", "so4_a4", "pom_a4", "pomff1_a4", "pombb1_a4", "bc_a4", "nh4_a4", "num_a4",
	"dst_a5", "so4_a5", "nh4_a5", "num_a5",
	"ncl_a6", "so4_a6", "nh4_a6", "num_a6",
	"dst_a7", "so4_a7", "nh4_a7", "num_a7",
	"soa1_a1", "soa1_a2", "soa2_a1", "soa2_a2", "soa3_a1", "soa3_a2", "soa4_a1", "soa4_a2", "soa5_a1", "soa5_a2",
	"soaff1_a1", "soaff2_a1", "soaff3_a1", "soaff4_a1", "soaff5_a1",
	"soabb1_a1", "soabb2_a1", "soabb3_a1", "soabb4_a1", "soabb5_a1",
	"soabg1_a1", "soabg2_a1", "soabg3_a1", "soabg4_a1", "soabg5_a1",
	"soaff1_a2", "soaff2_a2", "soaff3_a2", "soaff4_a2", "soaff5_a2",
	"soabb1_a2", "soabb2_a2", "soabb3_a2", "soabb4_a2", "soabb5_a2",
	"soabg1_a2", "soabg2_a2", "soabg3_a2", "soabg4_a2", "soabg5_a2",
}

// MAM4Catalogue returns a copy of the MAM4 aerosol catalogue.
func MAM4Catalogue() []string {
	out := make([]string, len(mam4Species))
	copy(out, mam4Species)
	return out
}
