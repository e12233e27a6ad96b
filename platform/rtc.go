package platform

import "time"

// RTCSnapshot mirrors the fields the GET_RTC hypercall (cpu86/disk.go,
// hypercallGetRTC) writes into guest memory, for host-side display
// without having to peek at guest RAM. Values use Go's bases (1-based
// Month and YearDay, full Year), not the hypercall's 0-based month and
// year-day and years since 1900.
type RTCSnapshot struct {
	Second, Minute, Hour int
	Day, Month, Year     int
	Weekday, YearDay      int
}

// RealRTC reads the host clock. The GET_RTC hypercall itself is
// engine-level (cpu86/disk.go calls time.Now() directly, since a
// hypercall is by definition a host service bypassing DeviceInterface
// entirely — see the GLOSSARY entry for "hypercall"); RealRTC exists
// so host-side tooling built on this package can read the same clock
// without duplicating cpu86's internal layout knowledge.
func RealRTC() RTCSnapshot {
	now := time.Now()
	return RTCSnapshot{
		Second:  now.Second(),
		Minute:  now.Minute(),
		Hour:    now.Hour(),
		Day:     now.Day(),
		Month:   int(now.Month()),
		Year:    now.Year(),
		Weekday: int(now.Weekday()),
		YearDay: now.YearDay(),
	}
}
