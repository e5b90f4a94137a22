package casafolio

// sectorByTicker maps Casablanca Stock Exchange tickers to their sector.
// The listing is small and changes rarely, so the table is compiled in.
var sectorByTicker = map[string]string{
	// Construction & materials
	"TGC": "Construction",
	"GTM": "Construction",
	"JET": "Construction",
	"AFM": "Construction",
	"ALM": "Construction",
	"STR": "Construction",
	"FBR": "Construction",

	// Distribution
	"NKL": "Distribution",
	"SNA": "Distribution",
	"LBV": "Distribution",
	"ATH": "Distribution",
	"DYT": "Distribution",

	// Banks & finance
	"ATW": "Banks",
	"BOA": "Banks",
	"BCP": "Banks",
	"CIH": "Banks",
	"CDM": "Banks",
	"EQD": "Finance",

	// Technology & telecom
	"HPS": "Technology",
	"M2M": "Technology",
	"IAM": "Telecom",

	// Health
	"AKT": "Health",
	"VCN": "Health",

	// Transport & ports
	"MSA": "Transport",
	"CTM": "Transport",

	// Holding companies
	"DHO": "Holding",

	// Tourism
	"RIS": "Tourism",

	// Energy
	"TMA": "Energy",
	"TQM": "Energy",

	// Mining
	"MNG": "Mining",
	"SMI": "Mining",
	"CMT": "Mining",
}

// SectorOf returns the sector for a ticker, or "Unknown" for tickers
// outside the static table.
func SectorOf(ticker string) string {
	if sector, ok := sectorByTicker[ticker]; ok {
		return sector
	}
	return "Unknown"
}
