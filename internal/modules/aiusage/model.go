// README: Monthly planning quota per client id.
package aiusage

import "errors"

// ErrInsufficientTokens is returned when a client has no planning requests left this month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the number of planning requests granted per month.
const DefaultTokens = 100

// periodLayout formats the month a counter belongs to.
const periodLayout = "2006-01"
