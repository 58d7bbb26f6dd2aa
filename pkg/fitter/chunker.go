// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package fitter

import (
	"path"
	"strings"
)

// Strategy identifies how a chunk was produced.
type Strategy string

const (
	// StrategySingle means the whole dump fit in one chunk.
	StrategySingle Strategy = "single"
	// StrategyModule means the chunk holds one module's file blocks.
	StrategyModule Strategy = "module-based"
	// StrategyFileSplit means one oversized file was split across chunks.
	StrategyFileSplit Strategy = "file-split"
)

// rootModuleKey groups files that live at the repository root.
const rootModuleKey = "root"

// ChunkMeta is the self-describing metadata of one chunk.
type ChunkMeta struct {
	// Index is 0-based and globally contiguous across strategies.
	Index int `yaml:"index"`
	// Total is backfilled once all chunks exist.
	Total           int      `yaml:"total"`
	Strategy        Strategy `yaml:"strategy"`
	Modules         []string `yaml:"modules,omitempty"`
	Files           []string `yaml:"files"`
	EstimatedTokens int      `yaml:"estimatedTokens"`
}

// Chunk is one bounded-size unit of fitted output. Its content always has
// an even count of code-fence marker lines.
type Chunk struct {
	Content string    `yaml:"-"`
	Meta    ChunkMeta `yaml:"meta"`
}

// ChunkResult is the ordered output of a chunking operation.
type ChunkResult struct {
	Chunks               []Chunk
	TotalEstimatedTokens int
}

// fileBlock is a contiguous dump region belonging to one source file,
// starting at its header line.
type fileBlock struct {
	path    string
	content string
}

// moduleGroup holds the file blocks sharing one parent-directory key.
type moduleGroup struct {
	key    string
	blocks []fileBlock
}

// Chunk splits a dump that cannot be reduced to one budget-sized blob into
// an ordered sequence of self-describing chunks: whole modules where they
// fit, runs of files where a module is too big, and sub-file splits where
// a single file is too big. Content preceding the first header line is
// preserved as part of the first chunk.
func (f *Fitter) Chunk(content string) ChunkResult {
	if len(content) <= f.calc.FirstChunkChars() {
		paths := collectPaths(content)
		chunk := Chunk{
			Content: content,
			Meta: ChunkMeta{
				Index:           0,
				Total:           1,
				Strategy:        StrategySingle,
				Modules:         moduleKeys(paths),
				Files:           paths,
				EstimatedTokens: f.calc.EstimateTokens(content),
			},
		}
		return ChunkResult{
			Chunks:               []Chunk{chunk},
			TotalEstimatedTokens: chunk.Meta.EstimatedTokens,
		}
	}

	preamble, blocks := parseBlocks(content)

	b := &chunkBuilder{f: f, preamble: preamble}

	if len(blocks) == 0 {
		// No recognizable file boundaries: whole-blob treatment.
		b.preamble = ""
		b.splitBlob(content)
		return b.finish()
	}

	for _, group := range groupModules(blocks) {
		if groupSize(group) <= b.activeLimit() {
			b.addModuleChunk(group.key, group.blocks)
			continue
		}
		b.splitModule(group)
	}

	return b.finish()
}

// chunkBuilder accumulates chunks in a mutable list so the total count can
// be backfilled after all chunks exist.
type chunkBuilder struct {
	f        *Fitter
	chunks   []Chunk
	preamble string
}

// activeLimit is the per-chunk character budget: the first emitted chunk
// gets the larger budget, every later chunk the smaller subsequent one.
func (b *chunkBuilder) activeLimit() int {
	if len(b.chunks) == 0 {
		return b.f.calc.FirstChunkChars()
	}
	return b.f.calc.SubsequentChunkChars()
}

// add appends a chunk, attaching the pending preamble to the first one.
// The index is assigned here; Total is backfilled in finish.
func (b *chunkBuilder) add(content string, strategy Strategy, modules, files []string) {
	if b.preamble != "" {
		content = b.preamble + "\n" + content
		b.preamble = ""
	}
	b.chunks = append(b.chunks, Chunk{
		Content: content,
		Meta: ChunkMeta{
			Index:           len(b.chunks),
			Strategy:        strategy,
			Modules:         modules,
			Files:           files,
			EstimatedTokens: b.f.calc.EstimateTokens(content),
		},
	})
}

// addModuleChunk emits one module-based chunk from a run of file blocks.
func (b *chunkBuilder) addModuleChunk(key string, blocks []fileBlock) {
	contents := make([]string, len(blocks))
	files := make([]string, len(blocks))
	for i, bl := range blocks {
		contents[i] = bl.content
		files[i] = bl.path
	}
	b.add(strings.Join(contents, "\n"), StrategyModule, []string{key}, files)
}

// splitModule flushes runs of file blocks that fit the active limit and
// hands single oversized blocks to the file splitter.
func (b *chunkBuilder) splitModule(group moduleGroup) {
	var pending []fileBlock
	pendingSize := 0

	flush := func() {
		if len(pending) == 0 {
			return
		}
		b.addModuleChunk(group.key, pending)
		pending = nil
		pendingSize = 0
	}

	for _, bl := range group.blocks {
		size := len(bl.content)
		if size > b.activeLimit() && len(pending) == 0 {
			b.splitFile(group.key, bl)
			continue
		}
		if len(pending) > 0 && pendingSize+1+size > b.activeLimit() {
			flush()
			// Re-check against the now-smaller subsequent budget.
			if size > b.activeLimit() {
				b.splitFile(group.key, bl)
				continue
			}
		}
		pending = append(pending, bl)
		pendingSize += size
		if len(pending) > 1 {
			pendingSize++ // joining newline
		}
	}
	flush()
}

// splitFile splits one oversized file block across chunks. Every resulting
// sub-chunk re-emits the file's header line first so each chunk is
// independently self-describing, and any fence left open at a cut point is
// closed with a synthetic closing line.
func (b *chunkBuilder) splitFile(moduleKey string, bl fileBlock) {
	lines := strings.Split(bl.content, "\n")
	header := lines[0]
	meta := func() ([]string, []string) {
		return []string{moduleKey}, []string{bl.path}
	}

	cur := []string{header}
	size := len(header)
	inFence := false

	flush := func() {
		if len(cur) <= 1 {
			return
		}
		if inFence {
			cur = append(cur, fenceMarker)
			inFence = false
		}
		modules, files := meta()
		b.add(strings.Join(cur, "\n"), StrategyFileSplit, modules, files)
		cur = []string{header}
		size = len(header)
	}

	for _, line := range lines[1:] {
		if size+1+len(line) > b.activeLimit() {
			flush()
		}
		cur = append(cur, line)
		size += 1 + len(line)
		if strings.HasPrefix(strings.TrimSpace(line), fenceMarker) {
			inFence = !inFence
		}
	}
	flush()
}

// splitBlob splits unstructured content (no recognizable headers) across
// chunks, keeping fences balanced. Strategy is file-split with no file
// attribution.
func (b *chunkBuilder) splitBlob(content string) {
	var cur []string
	size := 0
	inFence := false

	flush := func() {
		if len(cur) == 0 {
			return
		}
		if inFence {
			cur = append(cur, fenceMarker)
			inFence = false
		}
		b.add(strings.Join(cur, "\n"), StrategyFileSplit, nil, nil)
		cur = nil
		size = 0
	}

	for _, line := range strings.Split(content, "\n") {
		if len(cur) > 0 && size+1+len(line) > b.activeLimit() {
			flush()
		}
		cur = append(cur, line)
		size += 1 + len(line)
		if strings.HasPrefix(strings.TrimSpace(line), fenceMarker) {
			inFence = !inFence
		}
	}
	flush()
}

// finish backfills every chunk's total count and sums token estimates.
func (b *chunkBuilder) finish() ChunkResult {
	total := 0
	for i := range b.chunks {
		b.chunks[i].Meta.Total = len(b.chunks)
		total += b.chunks[i].Meta.EstimatedTokens
	}
	return ChunkResult{Chunks: b.chunks, TotalEstimatedTokens: total}
}

// parseBlocks scans the dump into its preamble (text before the first
// header line) and ordered file blocks. Block order follows the input.
func parseBlocks(content string) (string, []fileBlock) {
	lines := strings.Split(content, "\n")

	var preamble []string
	var blocks []fileBlock
	var cur []string
	curPath := ""

	flush := func() {
		if curPath == "" {
			return
		}
		blocks = append(blocks, fileBlock{path: curPath, content: strings.Join(cur, "\n")})
		cur = nil
	}

	for _, line := range lines {
		if p := headerPath(line); p != "" {
			flush()
			curPath = p
			cur = []string{line}
			continue
		}
		if curPath == "" {
			preamble = append(preamble, line)
			continue
		}
		cur = append(cur, line)
	}
	flush()

	return strings.TrimRight(strings.Join(preamble, "\n"), "\n"), blocks
}

// groupModules groups file blocks by parent-directory key, preserving
// first-appearance order of keys. The union of all groups is exactly the
// input blocks.
func groupModules(blocks []fileBlock) []moduleGroup {
	index := make(map[string]int)
	var groups []moduleGroup

	for _, bl := range blocks {
		key := moduleKey(bl.path)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, moduleGroup{key: key})
		}
		groups[i].blocks = append(groups[i].blocks, bl)
	}
	return groups
}

// moduleKey maps a file path to its parent-directory key. Root-level files
// key to a literal "root".
func moduleKey(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	dir := path.Dir(p)
	if dir == "." || dir == "/" || dir == "" {
		return rootModuleKey
	}
	return dir
}

// moduleKeys returns the ordered distinct module keys of a path list.
func moduleKeys(paths []string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, p := range paths {
		k := moduleKey(p)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// collectPaths returns every header-declared path in the dump, in order.
func collectPaths(content string) []string {
	var paths []string
	for _, line := range strings.Split(content, "\n") {
		if p := headerPath(line); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// groupSize is the joined character size of a module's blocks.
func groupSize(g moduleGroup) int {
	size := 0
	for i, bl := range g.blocks {
		if i > 0 {
			size++
		}
		size += len(bl.content)
	}
	return size
}
