package vegca

// PFT enumerates the plant functional types a cell can hold. The numeric
// codes follow the external vegetation__plant_functional_type convention:
// grass=0, shrub=1, tree=2, bare=3, shrub seedling=4, tree seedling=5.
type PFT uint8

const (
	Grass PFT = iota
	Shrub
	Tree
	Bare
	ShrubSeedling
	TreeSeedling

	numPFT = 6
)

// String returns the lowercase label used in logs and exports.
func (p PFT) String() string {
	switch p {
	case Grass:
		return "grass"
	case Shrub:
		return "shrub"
	case Tree:
		return "tree"
	case Bare:
		return "bare"
	case ShrubSeedling:
		return "shrub_seedling"
	case TreeSeedling:
		return "tree_seedling"
	default:
		return "unknown"
	}
}

// Vegetated reports whether the type counts as plant cover.
func (p PFT) Vegetated() bool { return p != Bare && p < numPFT }

// MatureForm returns the adult type a seedling grows into and whether the
// type is a seedling at all.
func (p PFT) MatureForm() (PFT, bool) {
	switch p {
	case ShrubSeedling:
		return Shrub, true
	case TreeSeedling:
		return Tree, true
	default:
		return p, false
	}
}
