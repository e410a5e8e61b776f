package domain

import (
	"github.com/shopspring/decimal"
)

// Installment shares of the three-bucket payment schedule. The anticipo
// is capped at 30% of the total budget; the segundo pago at 60% of what
// remains after the anticipo. The tercer pago absorbs everything else.
var (
	anticipoShare = decimal.New(30, -2) // 0.30
	segundoShare  = decimal.New(60, -2) // 0.60
)

// PaymentBucket names one of the three installment buckets.
type PaymentBucket string

const (
	BucketAnticipo PaymentBucket = "anticipo"
	BucketSegundo  PaymentBucket = "segundo_pago"
	BucketTercer   PaymentBucket = "tercer_pago"
)

// OverflowPolicy controls what happens when a payment exceeds the cap of
// the bucket it lands in.
type OverflowPolicy string

const (
	// CapAndDrop discards the excess over the bucket cap. This mirrors
	// the historical behavior and is the default.
	CapAndDrop OverflowPolicy = "cap_and_drop"
	// CapAndCarry rolls the excess into the next open bucket(s).
	CapAndCarry OverflowPolicy = "cap_and_carry"
)

// PaymentStatus tracks what a client has paid toward which milestone of
// an event. Buckets are only ever increased, and only by Allocate.
type PaymentStatus struct {
	TotalBudget      decimal.Decimal
	AnticipoReceived decimal.Decimal
	SegundoPago      decimal.Decimal
	TercerPago       decimal.Decimal
}

// TotalReceived returns the sum of the three buckets.
func (p PaymentStatus) TotalReceived() decimal.Decimal {
	return p.AnticipoReceived.Add(p.SegundoPago).Add(p.TercerPago)
}

// BalanceDue returns the outstanding budget, clamped at zero for display.
func (p PaymentStatus) BalanceDue() decimal.Decimal {
	due := p.TotalBudget.Sub(p.TotalReceived())
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// AnticipoCap is the maximum the anticipo bucket may hold.
func (p PaymentStatus) AnticipoCap() decimal.Decimal {
	return p.TotalBudget.Mul(anticipoShare).Round(2)
}

// SegundoCap is the maximum the segundo bucket may hold, evaluated
// against the remaining balance after the anticipo, not the original
// budget.
func (p PaymentStatus) SegundoCap() decimal.Decimal {
	return p.TotalBudget.Sub(p.AnticipoReceived).Mul(segundoShare).Round(2)
}

// Allocation records where one slice of a payment landed.
type Allocation struct {
	Bucket  PaymentBucket
	Applied decimal.Decimal
	// Dropped is the excess discarded under CapAndDrop. Zero otherwise.
	Dropped decimal.Decimal
}

// Allocate applies an incoming client payment to the installment
// schedule. The payment lands in the anticipo bucket only while that
// bucket is exactly zero, then in the segundo bucket only while it is
// exactly zero, then cumulatively in the tercer bucket. A single call
// fills at most one capped bucket; under CapAndCarry the remainder
// cascades to the following bucket(s), under CapAndDrop it is discarded.
func (p *PaymentStatus) Allocate(amount decimal.Decimal, policy OverflowPolicy) ([]Allocation, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var allocations []Allocation
	remaining := amount

	if p.AnticipoReceived.IsZero() {
		bucketCap := p.AnticipoCap()
		applied := decimal.Min(remaining, bucketCap)
		p.AnticipoReceived = applied
		remaining = remaining.Sub(applied)

		alloc := Allocation{Bucket: BucketAnticipo, Applied: applied}
		if policy == CapAndDrop && remaining.IsPositive() {
			alloc.Dropped = remaining
			remaining = decimal.Zero
		}
		allocations = append(allocations, alloc)

		if remaining.LessThanOrEqual(decimal.Zero) {
			return allocations, nil
		}
	}

	if p.SegundoPago.IsZero() {
		bucketCap := p.SegundoCap()
		applied := decimal.Min(remaining, bucketCap)
		p.SegundoPago = applied
		remaining = remaining.Sub(applied)

		alloc := Allocation{Bucket: BucketSegundo, Applied: applied}
		if policy == CapAndDrop && remaining.IsPositive() {
			alloc.Dropped = remaining
			remaining = decimal.Zero
		}
		allocations = append(allocations, alloc)

		if remaining.LessThanOrEqual(decimal.Zero) {
			return allocations, nil
		}
	}

	p.TercerPago = p.TercerPago.Add(remaining)
	allocations = append(allocations, Allocation{Bucket: BucketTercer, Applied: remaining})

	return allocations, nil
}
