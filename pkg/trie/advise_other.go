//go:build !linux

package trie

func adviseWillNeed(data []byte) {}
