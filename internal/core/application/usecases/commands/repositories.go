// Package commands contains the write-side operations of the dispatch core.
// Every command follows the same pattern: a validated command value, a
// handler owning a unit-of-work factory, and a Handle method that runs the
// whole operation inside one transaction.
package commands

import "smartdelivery/internal/core/ports"

// UoW is the transactional contract command handlers work against. It is an
// alias of the ports contract so handler tests can substitute doubles without
// touching the adapters.
type UoW = ports.UnitOfWork

// UoWFactory creates a fresh unit of work per handled command.
type UoWFactory interface {
	Create() UoW
}

// FuncUoWFactory adapts a closure to the UoWFactory interface.
type FuncUoWFactory func() UoW

// Create returns a new unit of work from the wrapped closure.
func (f FuncUoWFactory) Create() UoW {
	return f()
}
