// Package broadcast fans view snapshots out to websocket clients.
//
// Hub runs a single register/unregister/broadcast loop. Each client has a
// buffered send channel drained by its write pump; a client whose buffer is
// full is dropped rather than allowed to stall the others.
package broadcast
