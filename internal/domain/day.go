package domain

// Day is one of the fixed seven study day options.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

var allDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// AllDays returns the day options in calendar order.
func AllDays() []Day {
	days := make([]Day, len(allDays))
	copy(days, allDays)
	return days
}

// Weekdays returns Monday through Friday.
func Weekdays() []Day {
	return AllDays()[:5]
}

func (d Day) String() string {
	return string(d)
}

func (d Day) IsValid() bool {
	for _, day := range allDays {
		if d == day {
			return true
		}
	}
	return false
}
