// Package courier contains the Courier aggregate and the role hierarchy.
// A courier belongs to exactly one business, claims orders from its pool,
// and continuously reports its position while on shift. Only the courier
// itself mutates its location; supervisors read it through snapshots.
package courier
