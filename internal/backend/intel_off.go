//go:build nointel

package backend

func newIntel() Backend { return nil }
