package quota

import "errors"

// ErrExhausted is returned when a client has no generations left for the current month.
var ErrExhausted = errors.New("monthly generation quota exhausted")

// DefaultMonthly is the number of generations granted per month.
const DefaultMonthly = 100

// monthLayout formats last_reset_month.
const monthLayout = "2006-01"
