// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// KeyGenerator generates deterministic cache keys.
type KeyGenerator struct {
	prefix string
}

// NewKeyGenerator creates a key generator.
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{
		prefix: "contextfit",
	}
}

// Generate generates a cache key from inputs using a SHA-256 digest.
// Inputs are length-prefixed so ("ab","c") and ("a","bc") never collide.
func (kg *KeyGenerator) Generate(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write([]byte(strconv.Itoa(len(input))))
		h.Write([]byte{':'})
		h.Write([]byte(input))
	}
	return kg.prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// GenerateForFit generates a key for one fit operation: the resolved dump
// path plus the options that change the output. Priority paths are sorted
// so argument order does not fragment the cache.
func (kg *KeyGenerator) GenerateForFit(resolvedPath, mode string, limit int, priorityPaths []string) string {
	sorted := make([]string, len(priorityPaths))
	copy(sorted, priorityPaths)
	sort.Strings(sorted)

	return kg.Generate(
		resolvedPath,
		mode,
		strconv.Itoa(limit),
		strings.Join(sorted, "\x00"),
	)
}
