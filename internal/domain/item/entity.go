package item

// Item is a read-only reference entity. The item service owns mutation; the
// booking core only reads availability and ownership.
type Item struct {
	ID        int64
	Name      string
	Available bool
	OwnerID   int64
}
