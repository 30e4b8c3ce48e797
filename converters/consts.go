package converters

const (
	ErrMsgEmptyValue    = "Value cannot be empty."
	ErrMsgBadTimeFormat = "Bad time format, expected HH:MM or HHMM"
	ErrMsgBadDateFormat = "Bad date format, expected YYYYMMDD or YYYY-MM-DD"
)
