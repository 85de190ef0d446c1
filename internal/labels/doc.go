// Package labels computes print-sheet geometry for item labels. It maps a
// flat geometry configuration and an ordered item selection to positioned
// label slots, including the QR edge derivation and start-offset blanks.
// Rendering the sheet is left to the caller.
package labels
