package segscroll

// Level is a nesting depth of the composite view, outermost first.
type Level uint8

const (
	LevelRoot Level = iota
	LevelContainer
	LevelPage
)

func (l Level) String() string {
	switch l {
	case LevelRoot:
		return "root"
	case LevelContainer:
		return "container"
	case LevelPage:
		return "page"
	}
	return "unknown"
}

// Permissions gate which level may consume scroll delta. Values are only
// produced by Grant, so exactly one flag is set.
type Permissions struct {
	Root      bool
	Container bool
	Page      bool
}

// Grant returns the permission state where only l may scroll.
func Grant(l Level) Permissions {
	switch l {
	case LevelContainer:
		return Permissions{Container: true}
	case LevelPage:
		return Permissions{Page: true}
	}
	return Permissions{Root: true}
}

// Owner returns the level holding permission.
func (p Permissions) Owner() Level {
	switch {
	case p.Page:
		return LevelPage
	case p.Container:
		return LevelContainer
	}
	return LevelRoot
}

// Allows reports whether l may scroll.
func (p Permissions) Allows(l Level) bool {
	switch l {
	case LevelRoot:
		return p.Root
	case LevelContainer:
		return p.Container
	case LevelPage:
		return p.Page
	}
	return false
}

// Exclusive reports whether exactly one level holds permission.
func (p Permissions) Exclusive() bool {
	n := 0
	for _, b := range [...]bool{p.Root, p.Container, p.Page} {
		if b {
			n++
		}
	}
	return n == 1
}

func (p Permissions) String() string {
	return p.Owner().String()
}
