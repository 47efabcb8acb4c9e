// Package chunk converts resolved entities into retrieval-sized records
// for downstream embedding and indexing. Methods and constructors are the
// primary unit; long bodies are split on blank-line logical blocks;
// class-likes become one summary chunk; fields are folded into their
// class summary and produce no chunk of their own.
package chunk

import (
	"fmt"
	"strings"

	"github.com/DeusData/javagraph/internal/entity"
)

// DefaultMaxLines is the split threshold for method bodies.
const DefaultMaxLines = 60

// Chunk is one retrieval unit derived from a single entity (or one part
// of a split method). Text is the formatted embedding payload; the
// remaining fields are carried as filterable metadata.
type Chunk struct {
	// ID is deterministic ("{qualified_name}#{part}") so re-indexing
	// upserts instead of duplicating.
	ID             string `json:"chunk_id"`
	SourceEntityID string `json:"source_entity_id"`

	Text       string `json:"chunk_text"`
	SourceCode string `json:"source_code"`

	FilePath  string `json:"file_path"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`

	Kind          entity.Kind `json:"entity_type"`
	Name          string      `json:"name"`
	QualifiedName string      `json:"qualified_name"`

	ClassName   string   `json:"class_name,omitempty"`
	PackageName string   `json:"package_name,omitempty"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Parameters  []string `json:"parameters,omitempty"`
	ReturnType  string   `json:"return_type,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
	Javadoc     string   `json:"javadoc,omitempty"`

	Calls    []string `json:"calls,omitempty"`
	CalledBy []string `json:"called_by,omitempty"`

	PartIndex  int `json:"part_index"`
	TotalParts int `json:"total_parts"`
}

// Chunker converts entity lists into chunk lists.
type Chunker struct {
	maxLines int
}

// NewChunker returns a Chunker splitting method bodies above maxLines;
// values <= 0 fall back to DefaultMaxLines.
func NewChunker(maxLines int) *Chunker {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &Chunker{maxLines: maxLines}
}

// Chunk converts a resolved entity list into chunks.
func (c *Chunker) Chunk(entities []*entity.Entity) []*Chunk {
	var chunks []*Chunk
	for _, e := range entities {
		switch {
		case e.Kind == entity.Field:
			continue
		case e.Kind.ClassLike():
			chunks = append(chunks, c.chunkClass(e, entities))
		case e.Kind.Callable():
			chunks = append(chunks, c.chunkMethod(e)...)
		}
	}
	return chunks
}

func (c *Chunker) chunkClass(e *entity.Entity, all []*entity.Entity) *Chunk {
	return c.makeChunk(e, FormatClassSummary(e, all), e.SourceCode, 0, 1)
}

func (c *Chunker) chunkMethod(e *entity.Entity) []*Chunk {
	lineCount := e.EndLine - e.StartLine + 1
	if lineCount <= c.maxLines {
		return []*Chunk{c.makeChunk(e, FormatText(e, ""), e.SourceCode, 0, 1)}
	}
	return c.splitLongMethod(e)
}

// splitLongMethod splits a long body on blank-line logical blocks, packs
// the blocks up to the line budget, and prefixes each part with the
// method signature so every part embeds with its declaration context.
func (c *Chunker) splitLongMethod(e *entity.Entity) []*Chunk {
	sourceLines := strings.Split(e.SourceCode, "\n")
	signature := extractSignature(sourceLines)
	sigLines := len(strings.Split(signature, "\n"))
	budget := c.maxLines - sigLines
	if budget < 1 {
		budget = 1
	}

	bodyLines := sourceLines[min(sigLines, len(sourceLines)):]
	blocks := splitByBlankLines(bodyLines)

	var parts []string
	var current []string
	for _, block := range blocks {
		if len(current)+len(block) > budget && len(current) > 0 {
			parts = append(parts, strings.Join(current, "\n"))
			current = nil
		}
		if len(block) > budget {
			// A single oversized block is force-split at the budget.
			for i := 0; i < len(block); i += budget {
				end := min(i+budget, len(block))
				parts = append(parts, strings.Join(block[i:end], "\n"))
			}
			continue
		}
		current = append(current, block...)
	}
	if len(current) > 0 {
		parts = append(parts, strings.Join(current, "\n"))
	}
	if len(parts) == 0 {
		return []*Chunk{c.makeChunk(e, FormatText(e, ""), e.SourceCode, 0, 1)}
	}

	chunks := make([]*Chunk, 0, len(parts))
	for i, body := range parts {
		partSource := fmt.Sprintf("%s\n    // ... (part %d/%d)\n%s", signature, i+1, len(parts), body)
		chunks = append(chunks, c.makeChunk(e, FormatText(e, partSource), partSource, i, len(parts)))
	}
	return chunks
}

func (c *Chunker) makeChunk(e *entity.Entity, text, sourceCode string, part, total int) *Chunk {
	return &Chunk{
		ID:             chunkID(e.QualifiedName, part),
		SourceEntityID: e.QualifiedName,
		Text:           text,
		SourceCode:     sourceCode,
		FilePath:       e.FilePath,
		StartLine:      e.StartLine,
		EndLine:        e.EndLine,
		Kind:           e.Kind,
		Name:           e.Name,
		QualifiedName:  e.QualifiedName,
		ClassName:      e.ClassName,
		PackageName:    e.PackageName,
		Modifiers:      e.Modifiers,
		Parameters:     e.Parameters,
		ReturnType:     e.ReturnType,
		Annotations:    e.Annotations,
		Javadoc:        e.Javadoc,
		Calls:          e.Calls,
		CalledBy:       e.CalledBy,
		PartIndex:      part,
		TotalParts:     total,
	}
}

func chunkID(qualifiedName string, part int) string {
	safe := strings.ReplaceAll(qualifiedName, " ", "_")
	return fmt.Sprintf("%s#%d", safe, part)
}

// extractSignature returns the lines up to and including the first line
// containing the opening brace.
func extractSignature(sourceLines []string) string {
	var sig []string
	for _, line := range sourceLines {
		sig = append(sig, line)
		if strings.Contains(line, "{") {
			break
		}
	}
	return strings.Join(sig, "\n")
}

// splitByBlankLines groups lines into blocks separated by blank lines.
func splitByBlankLines(lines []string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}
