package entity

// CopyState is what the copy button currently shows.
type CopyState int

const (
	// Idle shows the copy label.
	Idle CopyState = iota
	// Copied shows the check mark until the revert fires.
	Copied
)

func (s CopyState) String() string {
	switch s {
	case Copied:
		return "copied"
	default:
		return "idle"
	}
}
