//go:build noamd

package backend

func newAMD() Backend { return nil }
