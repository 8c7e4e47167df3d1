// models/covid.go
package models

// ReportRow represents one record of a JHU CSSE daily report CSV.
// CSV tags must EXACTLY match the upstream headers; the column layout is
// a contract with the source format.
type ReportRow struct {
	FIPS              string `csv:"FIPS"`
	Admin2            string `csv:"Admin2"`
	ProvinceState     string `csv:"Province_State"`
	CountryRegion     string `csv:"Country_Region"`
	LastUpdate        string `csv:"Last_Update"`
	Lat               string `csv:"Lat"`
	Long              string `csv:"Long_"`
	Confirmed         string `csv:"Confirmed"`
	Deaths            string `csv:"Deaths"`
	Recovered         string `csv:"Recovered"`
	Active            string `csv:"Active"`
	CombinedKey       string `csv:"Combined_Key"`
	IncidentRate      string `csv:"Incident_Rate"`
	CaseFatalityRatio string `csv:"Case_Fatality_Ratio"`
}

// Tally holds the case counts for one country on one report date.
// Deltas computed between days may carry negative values.
type Tally struct {
	Confirmed int `json:"confirmed"`
	Deaths    int `json:"deaths"`
	Recovered int `json:"recovered"`
	Active    int `json:"active"`
}

// Add returns the field-wise sum of two tallies.
func (t Tally) Add(o Tally) Tally {
	return Tally{
		Confirmed: t.Confirmed + o.Confirmed,
		Deaths:    t.Deaths + o.Deaths,
		Recovered: t.Recovered + o.Recovered,
		Active:    t.Active + o.Active,
	}
}

// Sub returns the field-wise difference t - o.
func (t Tally) Sub(o Tally) Tally {
	return Tally{
		Confirmed: t.Confirmed - o.Confirmed,
		Deaths:    t.Deaths - o.Deaths,
		Recovered: t.Recovered - o.Recovered,
		Active:    t.Active - o.Active,
	}
}

// DateAggregate maps a country name (exactly as it appears in the source)
// to its summed tally for a single report date.
type DateAggregate map[string]Tally

// SeriesPoint is one day of a country's time series.
type SeriesPoint struct {
	Date  string // canonical MM-DD-YYYY
	Tally Tally
}

// CountrySeries is a country's tally per day over a date range, in
// ascending chronological order.
type CountrySeries []SeriesPoint
