// Package bench runs a projected model count over every circuit file in
// a directory and records the outcome of each run as a CSV dataset.
package bench

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// Row is one line of the benchmark CSV: everything a single counting
// run reported, plus the bookkeeping needed to reproduce it (backend,
// seed, trials, r).
type Row struct {
	Path    string
	Status  string
	Backend string
	Mode    string
	Trials  int
	R       int
	Seed    uint64

	WallMs        int64
	HasWallMs     bool
	SolveCalls    int
	HasSolveCalls bool
	Result        uint64
	HasResult     bool
	M             int
	HasM          bool
	FileBytes     int64
	HasFileBytes  bool
	AigInputs     int
	HasAigInputs  bool
	AigAnds       int
	HasAigAnds    bool
	ConeInputs    int
	HasConeInputs bool
	CNFVars       int
	HasCNFVars    bool
	CNFClauses    int
	HasCNFClauses bool
}

// CSVHeader is the fixed column order every dataset CSV uses.
const CSVHeader = "path,status,backend,mode,wall_ms,solve_calls,result,m,trials,r,seed,file_bytes,aig_inputs,aig_ands,cone_inputs,cnf_vars,cnf_clauses"

// CSVLine renders r as one CSV row using encoding/csv's quoting rules,
// leaving optional fields blank when their Has* flag is false.
func (r Row) CSVLine() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write([]string{
		r.Path,
		r.Status,
		r.Backend,
		r.Mode,
		optInt64(r.WallMs, r.HasWallMs),
		optInt(r.SolveCalls, r.HasSolveCalls),
		optUint64(r.Result, r.HasResult),
		optInt(r.M, r.HasM),
		strconv.Itoa(r.Trials),
		strconv.Itoa(r.R),
		strconv.FormatUint(r.Seed, 10),
		optInt64(r.FileBytes, r.HasFileBytes),
		optInt(r.AigInputs, r.HasAigInputs),
		optInt(r.AigAnds, r.HasAigAnds),
		optInt(r.ConeInputs, r.HasConeInputs),
		optInt(r.CNFVars, r.HasCNFVars),
		optInt(r.CNFClauses, r.HasCNFClauses),
	})
	w.Flush()
	return strings.TrimRight(sb.String(), "\r\n")
}

func optInt(v int, has bool) string {
	if !has {
		return ""
	}
	return strconv.Itoa(v)
}

func optInt64(v int64, has bool) string {
	if !has {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func optUint64(v uint64, has bool) string {
	if !has {
		return ""
	}
	return strconv.FormatUint(v, 10)
}
