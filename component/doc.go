// Package component models one multi-port RF element: a scattering table
// indexed by frequency and dependency axes, a power ceiling per port, and a
// connection list per port.
//
// Connections are symmetric. Connect(p, peer, q) records peer:q on port p
// and c:p on peer's port q; Disconnect removes both or fails with
// ErrNotConnected. Peers are referenced by ID (Endpoint), so a Component
// never holds a pointer to another Component.
//
// Persistence (WriteCSV / ReadCSV):
//
//	MaxPowers=[10, inf]
//	Frequency (Hz),S11 (dB),S12 (dB),S21 (dB),S22 (dB),Temperature (C)
//	1000000000,-20,-30,-3,-25,25
//
// The MaxPowers line is optional; the port count is inferred from the
// highest port index in the gain column names.
//
// Max powers are stored data only: nothing propagates them through a circuit.
package component
