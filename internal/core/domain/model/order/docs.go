// Package order contains the Order aggregate: the unit of work couriers
// claim from the shared pool, deliver and complete.
//
// An order enters the system through a platform webhook or manual entry
// with no owning courier (the "pool"), is claimed by exactly one courier,
// and terminates as completed or cancelled. Orders are never deleted,
// only state-transitioned.
package order
