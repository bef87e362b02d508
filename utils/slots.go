// utils/slots.go
package utils

import "fmt"

const (
	MinSlotDuration = 15  // minutes
	MaxSlotDuration = 120 // minutes
)

// SlotWindow is one generated bookable interval.
type SlotWindow struct {
	StartTime string // HH:MM
	EndTime   string // HH:MM
}

// GenerateSlots partitions [startTime, endTime) into consecutive
// non-overlapping windows of duration minutes. A trailing window that
// would run past endTime is discarded rather than shortened.
func GenerateSlots(startTime, endTime string, duration int) ([]SlotWindow, error) {
	if duration < MinSlotDuration || duration > MaxSlotDuration {
		return nil, fmt.Errorf("duration must be between %d and %d minutes", MinSlotDuration, MaxSlotDuration)
	}

	start, err := ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("start time %s must be before end time %s", startTime, endTime)
	}

	var slots []SlotWindow
	for cur := start; cur+duration <= end; cur += duration {
		slots = append(slots, SlotWindow{
			StartTime: FormatClock(cur),
			EndTime:   FormatClock(cur + duration),
		})
	}
	return slots, nil
}
