package sweep

import (
	"sort"

	"github.com/cardops/backoffice/calendar"
	"github.com/cardops/backoffice/cerrors"
	"github.com/cardops/backoffice/money"
)

// BalanceChange is a signed delta to a single bucket, effective on Date.
// Positive amounts accrue the bucket's balance; negative amounts reduce it.
type BalanceChange struct {
	Date   calendar.Date
	Bucket BalanceBucket
	Amount money.DecimalAmount
}

// DailyBalance is a snapshot of every bucket's balance on Date. Per the
// spec invariant, every bucket always has an entry (zero if unchanged).
type DailyBalance struct {
	Date     calendar.Date
	Balances [numBuckets]money.DecimalAmount
}

// Balance returns the snapshot's amount for bucket.
func (d DailyBalance) Balance(bucket BalanceBucket) money.DecimalAmount {
	if !bucket.Valid() {
		return money.Zero
	}
	return d.Balances[bucket]
}

// Total is the sum across all four buckets.
func (d DailyBalance) Total() money.DecimalAmount {
	total := money.Zero
	for _, b := range d.Balances {
		total = total.Add(b)
	}
	return total
}

// changePoint is one date's worth of accumulated per-bucket deltas. The
// calculator stores one changePoint per distinct date, in a slice kept
// sorted by Date so it can be located with binary search — the sorted
// slice is the "ordered map keyed by date" spec.md §4.3 calls for; the
// pack carries no third-party ordered-map/tree library, so this is the
// idiomatic stdlib container for a small, append-heavy sorted sequence.
type changePoint struct {
	Date   calendar.Date
	Deltas [numBuckets]money.DecimalAmount
}

// Calculator is the mutable sweep-line accumulator: an ordered sequence of
// change points plus the initial per-bucket balances they're applied on
// top of. It is not safe for concurrent mutation (spec.md §5); pure
// queries on a frozen instance are read-only and race-free.
type Calculator struct {
	initial [numBuckets]money.DecimalAmount
	points  []changePoint
}

// NewCalculator builds a calculator with the given initial per-bucket
// balances (zero for any bucket not present in initial).
func NewCalculator(initial map[BalanceBucket]money.DecimalAmount) *Calculator {
	c := &Calculator{}
	for bucket, amount := range initial {
		if bucket.Valid() {
			c.initial[bucket] = amount
		}
	}
	return c
}

// find returns the index of date's change point and true if it exists, or
// the insertion index and false if it doesn't.
func (c *Calculator) find(date calendar.Date) (int, bool) {
	i := sort.Search(len(c.points), func(i int) bool {
		return !c.points[i].Date.Before(date)
	})
	if i < len(c.points) && c.points[i].Date.Equal(date) {
		return i, true
	}
	return i, false
}

// AddChange records change, adding additively to any existing entry at the
// same date.
func (c *Calculator) AddChange(change BalanceChange) error {
	if !change.Bucket.Valid() {
		return cerrors.InvalidArgumentf("balance change references unsupported bucket %s", change.Bucket)
	}

	i, exists := c.find(change.Date)
	if exists {
		c.points[i].Deltas[change.Bucket] = c.points[i].Deltas[change.Bucket].Add(change.Amount)
		return nil
	}

	point := changePoint{Date: change.Date}
	point.Deltas[change.Bucket] = change.Amount

	c.points = append(c.points, changePoint{})
	copy(c.points[i+1:], c.points[i:])
	c.points[i] = point
	return nil
}

// AddChanges records every change in changes, in order.
func (c *Calculator) AddChanges(changes []BalanceChange) error {
	for _, change := range changes {
		if err := c.AddChange(change); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes every recorded change point, leaving only the initial
// balances.
func (c *Calculator) Clear() {
	c.points = nil
}

// ChangePoints returns the sorted set of dates at which a change was
// recorded.
func (c *Calculator) ChangePoints() []calendar.Date {
	dates := make([]calendar.Date, len(c.points))
	for i, p := range c.points {
		dates[i] = p.Date
	}
	return dates
}

// BalanceAt applies every delta with key <= date to the initial balances
// and returns the resulting DailyBalance.
func (c *Calculator) BalanceAt(date calendar.Date) DailyBalance {
	running := c.initial
	for _, p := range c.points {
		if p.Date.After(date) {
			break
		}
		for _, b := range AllBuckets {
			running[b] = running[b].Add(p.Deltas[b])
		}
	}
	return DailyBalance{Date: date, Balances: running}
}

// DailyBalances applies all deltas with key < r.Start to obtain the
// opening state, then iterates every calendar day in r, folding any delta
// for that date into the running balances and emitting a snapshot.
func (c *Calculator) DailyBalances(r calendar.DateRange) []DailyBalance {
	running := c.initial
	idx := 0
	for idx < len(c.points) && c.points[idx].Date.Before(r.Start) {
		for _, b := range AllBuckets {
			running[b] = running[b].Add(c.points[idx].Deltas[b])
		}
		idx++
	}

	days := r.Days()
	snapshots := make([]DailyBalance, len(days))
	for i, day := range days {
		for idx < len(c.points) && c.points[idx].Date.Equal(day) {
			for _, b := range AllBuckets {
				running[b] = running[b].Add(c.points[idx].Deltas[b])
			}
			idx++
		}
		snapshots[i] = DailyBalance{Date: day, Balances: running}
	}
	return snapshots
}

// AverageBalances folds the sequence from DailyBalances and computes the
// per-bucket mean at 6 decimal digits, half-up rounded. An empty range
// yields all zeros.
func (c *Calculator) AverageBalances(r calendar.DateRange) [numBuckets]money.DecimalAmount {
	var sums [numBuckets]money.DecimalAmount
	snapshots := c.DailyBalances(r)
	if len(snapshots) == 0 {
		return sums
	}

	for _, snap := range snapshots {
		for _, b := range AllBuckets {
			sums[b] = sums[b].Add(snap.Balance(b))
		}
	}

	count := money.DecimalAmountFromInt(int64(len(snapshots)))
	var averages [numBuckets]money.DecimalAmount
	for _, b := range AllBuckets {
		mean, err := sums[b].Div(count)
		if err != nil {
			continue
		}
		averages[b] = mean.RoundHalfUp(6)
	}
	return averages
}

// TotalDelta sums bucket's deltas at every change point contained in r.
func (c *Calculator) TotalDelta(bucket BalanceBucket, r calendar.DateRange) money.DecimalAmount {
	total := money.Zero
	if !bucket.Valid() {
		return total
	}
	for _, p := range c.points {
		if r.Contains(p.Date) {
			total = total.Add(p.Deltas[bucket])
		}
	}
	return total
}
