//go:build nonvidia

package backend

func newNVIDIA() Backend { return nil }
