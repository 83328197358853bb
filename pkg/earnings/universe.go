package earnings

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// DefaultUniverse is the curated list of large and mid caps polled when the
// calendar scrape finds too little. It contains repeats across sectors;
// UniqueSymbols removes them.
var DefaultUniverse = []string{
	// Large cap tech
	"AAPL", "MSFT", "GOOGL", "GOOG", "AMZN", "NVDA", "META", "TSLA", "AVGO", "ORCL",
	"ADBE", "CRM", "CSCO", "ACN", "AMD", "INTC", "QCOM", "TXN", "INTU", "IBM",
	"SNOW", "NOW", "PANW", "PLTR", "CRWD", "SHOP", "SQ", "UBER", "ABNB", "RBLX",
	"DDOG", "NET", "ZS", "OKTA", "MDB", "TEAM", "WDAY", "ZM", "DOCU", "TWLO",

	// Finance
	"JPM", "BAC", "WFC", "C", "GS", "MS", "BLK", "SCHW", "V", "MA",
	"PYPL", "AXP", "SPGI", "BRK-B", "USB", "PNC", "TFC", "COF", "BK", "STT",
	"CB", "PGR", "TRV", "ALL", "AIG", "MET", "PRU", "AFL", "HIG", "CINF",

	// Healthcare
	"UNH", "JNJ", "LLY", "ABBV", "MRK", "TMO", "ABT", "DHR", "PFE", "AMGN",
	"CVS", "CI", "HUM", "ISRG", "VRTX", "REGN", "GILD", "BIIB", "MDT", "BSX",
	"SYK", "EW", "IDXX", "ZBH", "BAX", "HOLX", "RMD", "ALGN", "DXCM", "PODD",

	// Consumer discretionary
	"AMZN", "TSLA", "HD", "MCD", "NKE", "SBUX", "TGT", "LOW", "TJX", "BKNG",
	"CMG", "YUM", "DRI", "ULTA", "ROST", "DG", "DLTR", "BBY", "ORLY", "AZO",
	"MAR", "HLT", "MGM", "WYNN", "LVS", "POOL", "WHR", "LEN", "DHI", "PHM",

	// Consumer staples
	"WMT", "COST", "PG", "KO", "PEP", "PM", "MO", "CL", "KMB", "GIS",
	"K", "HSY", "MDLZ", "KHC", "MKC", "SJM", "CAG", "CPB", "HRL", "TSN",
	"EL", "CL", "CHD", "CLX", "TAP", "STZ", "BF-B", "SAM", "MNST", "KDP",

	// Energy
	"XOM", "CVX", "COP", "SLB", "EOG", "PSX", "VLO", "MPC", "OXY", "HAL",
	"MRO", "DVN", "FANG", "APA", "HES", "KMI", "WMB", "OKE", "LNG", "TRGP",

	// Industrials
	"BA", "CAT", "GE", "HON", "UPS", "RTX", "DE", "LMT", "MMM", "ETN",
	"EMR", "ITW", "PH", "CARR", "OTIS", "PCAR", "CMI", "NSC", "UNP", "CSX",
	"FDX", "DAL", "UAL", "LUV", "AAL", "JBLU", "WM", "RSG", "IR", "FAST",

	// Communications
	"DIS", "CMCSA", "NFLX", "T", "VZ", "TMUS", "CHTR", "EA", "TTWO", "WBD",
	"PARA", "FOXA", "FOX", "OMC", "IPG", "MTCH", "PINS", "SNAP", "SPOT", "LYV",

	// Real estate and utilities
	"NEE", "DUK", "SO", "D", "AEP", "EXC", "SRE", "PLD", "AMT", "CCI",
	"EQIX", "PSA", "WELL", "AVB", "EQR", "VICI", "O", "DLR", "SPG", "VTR",

	// Materials
	"LIN", "APD", "SHW", "ECL", "NEM", "FCX", "DD", "DOW", "PPG", "NUE",
	"VMC", "MLM", "ALB", "CF", "MOS", "IFF", "FMC", "CE", "EMN", "LYB",

	// Mid and small cap
	"ENPH", "SEDG", "FSLR", "RUN", "SPWR", "DQ", "NOVA", "JKS", "CSIQ", "MAXN",
}

// UniqueSymbols upper-cases symbols and drops repeats, keeping first-seen
// order.
func UniqueSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// LoadUniverseCSV reads symbols from the first column of a CSV file whose
// first row is a header.
func LoadUniverseCSV(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open universe file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read universe file %s: %w", filename, err)
	}

	var symbols []string
	for i, row := range rows {
		if i == 0 || len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		symbols = append(symbols, strings.ToUpper(strings.TrimSpace(row[0])))
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("universe file %s lists no symbols", filename)
	}
	return UniqueSymbols(symbols), nil
}
