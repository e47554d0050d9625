package types

// Board is a board part number together with the platform derived from the
// hardware component database. It is resolved once per invocation.
type Board struct {
	ID       string
	Platform string
	Device   Device
}

func (b Board) String() string {
	return b.ID
}

// Device is the decomposed device declaration of a board's component record.
type Device struct {
	Name        string
	ProductLine string
	Module      bool
	Series      string
	Revision    string
	Model       string
	Flash       string
	Variant     string
}
