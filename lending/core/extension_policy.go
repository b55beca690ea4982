package core

// ExtensionPolicy caps how often a single loan may be extended.
// MaxExtensions of zero means unlimited.
type ExtensionPolicy struct {
	MaxExtensions int
}

// UnlimitedExtensions allows any number of extensions while a loan is overdue.
func UnlimitedExtensions() ExtensionPolicy {
	return ExtensionPolicy{}
}

// SingleExtension allows one extension per loan.
func SingleExtension() ExtensionPolicy {
	return ExtensionPolicy{MaxExtensions: 1}
}

// Allows reports whether a loan that was already extended alreadyExtended times may be extended again.
func (p ExtensionPolicy) Allows(alreadyExtended int) bool {
	if p.MaxExtensions <= 0 {
		return true
	}

	return alreadyExtended < p.MaxExtensions
}
