package interlayer

// Duration is a discrete load duration class. The set matches the column
// labels of the interlayer E(t) workbook; durations are categories defined
// by the standards, not a continuous axis.
type Duration string

const (
	Duration1Sec    Duration = "1 sec"
	Duration3Sec    Duration = "3 sec"
	Duration5Sec    Duration = "5 sec"
	Duration10Sec   Duration = "10 sec"
	Duration30Sec   Duration = "30 sec"
	Duration1Min    Duration = "1 min"
	Duration10Min   Duration = "10 min"
	Duration30Min   Duration = "30 min"
	Duration1Hour   Duration = "1 hr"
	Duration1Day    Duration = "1 day"
	Duration1Month  Duration = "1 month"
	Duration1Year   Duration = "1 year"
	Duration50Years Duration = "50 years"
)

var durationSeconds = map[Duration]float64{
	Duration1Sec:    1,
	Duration3Sec:    3,
	Duration5Sec:    5,
	Duration10Sec:   10,
	Duration30Sec:   30,
	Duration1Min:    60,
	Duration10Min:   600,
	Duration30Min:   1800,
	Duration1Hour:   3600,
	Duration1Day:    86400,
	Duration1Month:  2628000,
	Duration1Year:   31536000,
	Duration50Years: 1576800000,
}

// Seconds returns the nominal duration in seconds, used for the log-time
// axis of comparison charts. ok is false for labels outside the known set.
func (d Duration) Seconds() (float64, bool) {
	s, ok := durationSeconds[d]
	return s, ok
}

// Known reports whether d is one of the recognised duration classes.
func (d Duration) Known() bool {
	_, ok := durationSeconds[d]
	return ok
}
