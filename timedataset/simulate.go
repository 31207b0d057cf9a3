package timedataset

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateDays returns n consecutive UTC midnights starting at the day of start
func GenerateDays(start time.Time, n int) []time.Time {
	t := make([]time.Time, 0, n)
	ct := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		t = append(t, ct.AddDate(0, 0, i))
	}
	return t
}

// GenerateYears returns every day from January 1st of startYear through December 31st
// of endYear
func GenerateYears(startYear, endYear int) []time.Time {
	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear+1, 1, 1, 0, 0, 0, 0, time.UTC)
	n := int(end.Sub(start) / (24 * time.Hour))
	return GenerateDays(start, n)
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func (s Series) SetConst(t []time.Time, val float64, start, end time.Time) Series {
	n := len(s)
	for i := 0; i < n; i++ {
		if (t[i].After(start) || t[i].Equal(start)) && t[i].Before(end) {
			s[i] = val
		}
	}
	return s
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateMonthlyY produces a value that is linear in the month of each time point
func GenerateMonthlyY(t []time.Time, bias, slope float64) Series {
	y := make([]float64, 0, len(t))
	for _, tPnt := range t {
		y = append(y, bias+slope*float64(tPnt.Month()))
	}
	return Series(y)
}

// GenerateAnnualWaveY produces a yearly cosine peaking on peakDay of the year
func GenerateAnnualWaveY(t []time.Time, amp float64, peakDay int) Series {
	y := make([]float64, 0, len(t))
	for _, tPnt := range t {
		phase := 2.0 * math.Pi * float64(tPnt.YearDay()-peakDay) / 365.25
		y = append(y, amp*math.Cos(phase))
	}
	return Series(y)
}

func GenerateNoise(t []time.Time, noiseScale float64, rng *rand.Rand) Series {
	y := make([]float64, 0, len(t))
	for range t {
		y = append(y, rng.NormFloat64()*noiseScale)
	}
	return Series(y)
}

// GenerateRawRows builds raw rows for the time points using aqi as the AQI of each day.
// Pollutants are set to fixed fractions of the AQI.
func GenerateRawRows(t []time.Time, aqi Series) []RawRow {
	rows := make([]RawRow, 0, len(t))
	for i, tPnt := range t {
		rows = append(rows, RawRow{
			Year:  tPnt.Year(),
			Month: int(tPnt.Month()),
			Date:  tPnt.Day(),
			AQI:   aqi[i],
			PM25:  aqi[i] * 0.6,
			PM10:  aqi[i] * 0.9,
			NO2:   aqi[i] * 0.2,
			SO2:   aqi[i] * 0.05,
			CO:    aqi[i] * 0.01,
			Ozone: aqi[i] * 0.15,
		})
	}
	return rows
}
