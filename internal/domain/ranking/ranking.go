// Package ranking orders candidate bridge routes under a sort policy and
// annotates them with rank, recommendation and label.
package ranking

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"bridgequote/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// DefaultMinutes is used when no minute count can be read from a route's estimated time.
const DefaultMinutes = 5

// tieEpsilon is an absolute difference in destination amount units, not a percentage.
var tieEpsilon = decimal.New(1, -2)

var (
	minuteToken = regexp.MustCompile(`(?i)(\d+)\s*(?:分钟|minutes?|mins?|m\b)`)
	hourToken   = regexp.MustCompile(`(?i)(\d+)\s*(?:小时|hours?|hrs?|h\b)`)
)

type keyedRoute struct {
	route   entity.QuoteRoute
	amount  decimal.Decimal
	fee     decimal.Decimal
	minutes int
}

// Rank returns a stably sorted copy of routes. Rank is the 1-based position,
// only rank 1 is recommended and only rank 1 carries the policy label.
// Unknown policies rank as optimal.
func Rank(routes []entity.QuoteRoute, policy entity.SortPolicy) []entity.QuoteRoute {
	if len(routes) == 0 {
		return []entity.QuoteRoute{}
	}

	keyed := make([]keyedRoute, len(routes))
	for i, r := range routes {
		keyed[i] = keyedRoute{
			route:   r,
			amount:  parseOrZero(r.ToTokenAmount),
			fee:     parseOrZero(r.TotalFeeUSD),
			minutes: EstimatedMinutes(r.EstimatedTime),
		}
	}

	slices.SortStableFunc(keyed, comparator(policy))

	out := make([]entity.QuoteRoute, len(keyed))
	for i, k := range keyed {
		r := k.route
		r.Rank = i + 1
		r.IsRecommended = i == 0
		r.RouteLabel = ""
		if i == 0 {
			r.RouteLabel = policy.Label()
		}
		out[i] = r
	}
	return out
}

func comparator(policy entity.SortPolicy) func(a, b keyedRoute) int {
	switch policy {
	case entity.PolicyFastest:
		return func(a, b keyedRoute) int {
			return cmp.Compare(a.minutes, b.minutes)
		}
	case entity.PolicyMostTokens:
		return func(a, b keyedRoute) int {
			return b.amount.Cmp(a.amount)
		}
	default:
		return compareOptimal
	}
}

// compareOptimal orders by destination amount descending unless the two
// amounts are within tieEpsilon, in which case the lower USD fee wins.
func compareOptimal(a, b keyedRoute) int {
	diff := b.amount.Sub(a.amount)
	if diff.Abs().GreaterThanOrEqual(tieEpsilon) {
		return diff.Sign()
	}
	return a.fee.Cmp(b.fee)
}

// EstimatedMinutes extracts the minute count used by the fastest policy.
// A structured value counts only through its positive minute count and is
// DefaultMinutes otherwise. Plain text yields the first integer followed by a
// minute unit, plus sixty per hour of an hour count written before it, else DefaultMinutes.
func EstimatedMinutes(t entity.EstimatedTime) int {
	if t.Kind == entity.EstimatedTimeStructured {
		if t.Minutes > 0 {
			return t.Minutes
		}
		return DefaultMinutes
	}

	text := t.Text
	minutes, minuteAt, ok := firstCount(minuteToken, text)
	hours, hourAt, hasHours := firstCount(hourToken, text)
	if hasHours && (!ok || hourAt < minuteAt) {
		// minutes is 0 when no minute unit follows
		return hours*60 + minutes
	}
	if !ok {
		return DefaultMinutes
	}
	return minutes
}

// firstCount returns the integer of the first match of re in text and its offset.
func firstCount(re *regexp.Regexp, text string) (int, int, bool) {
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	n, err := strconv.Atoi(text[loc[2]:loc[3]])
	if err != nil {
		return 0, 0, false
	}
	return n, loc[0], true
}

// Recommended returns the rank 1 route of a ranked set.
func Recommended(ranked []entity.QuoteRoute) (entity.QuoteRoute, bool) {
	for _, r := range ranked {
		if r.IsRecommended {
			return r, true
		}
	}
	return entity.QuoteRoute{}, false
}

func parseOrZero(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}
