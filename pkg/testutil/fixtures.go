package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// LoanHistoryRows is the number of data rows in LoanHistoryCSV.
const LoanHistoryRows = 40

// LoanHistoryCSV is a small loan history in the raw export layout: mixed-case
// headers with spaces and an unused identifier column.
const LoanHistoryCSV = `LoanID,Age,Income,Loan Amount,Credit Score,Default
LN0001,40,57544,106500,349,1
LN0002,24,42675,98863,359,1
LN0003,52,74281,12829,388,0
LN0004,47,127621,21312,546,0
LN0005,25,129285,18495,426,0
LN0006,34,34216,154284,706,1
LN0007,23,75955,15211,436,1
LN0008,38,127874,40815,420,0
LN0009,56,98866,149868,485,1
LN0010,26,67249,100621,399,1
LN0011,55,34459,150945,361,1
LN0012,59,71990,133132,844,0
LN0013,47,100351,125054,764,0
LN0014,43,96582,68123,484,1
LN0015,64,81988,24457,607,0
LN0016,53,147791,93040,759,0
LN0017,38,37189,33950,824,0
LN0018,46,61243,92667,455,1
LN0019,51,128545,13277,379,0
LN0020,68,100247,92161,658,0
LN0021,58,148200,155016,767,0
LN0022,24,42535,73762,785,1
LN0023,64,35039,18904,617,0
LN0024,61,134822,77605,695,0
LN0025,62,108965,8914,772,0
LN0026,42,62052,163148,419,1
LN0027,51,33454,60201,594,1
LN0028,28,82910,107306,700,0
LN0029,51,39123,46611,759,0
LN0030,45,90833,38894,740,0
LN0031,55,90986,111867,667,0
LN0032,63,117730,63490,454,1
LN0033,25,64194,42661,537,0
LN0034,62,79167,6162,796,0
LN0035,57,65800,71877,588,1
LN0036,20,56188,112824,847,1
LN0037,43,101522,35896,827,0
LN0038,59,32153,122706,701,1
LN0039,45,122589,106316,406,1
LN0040,50,122973,19317,495,0`

// WriteLoanHistoryCSV writes LoanHistoryCSV into dir and returns its path.
func WriteLoanHistoryCSV(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "loan_default.csv")
	if err := os.WriteFile(path, []byte(LoanHistoryCSV), 0o600); err != nil {
		t.Fatalf("failed to write loan history fixture: %v", err)
	}
	return path
}
