package repo

// SetBeforeSwap installs a hook that runs right before a package directory is swapped in.
func (m *Manager) SetBeforeSwap(f func(id string) error) {
	m.beforeSwap = f
}
