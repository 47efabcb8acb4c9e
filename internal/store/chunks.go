package store

import (
	"database/sql"
	"fmt"

	"github.com/DeusData/javagraph/internal/chunk"
	"github.com/DeusData/javagraph/internal/entity"
)

const chunkColumns = `chunk_id, source_entity_id, text, source_code, file_path,
	start_line, end_line, kind, name, qualified_name, class_name, package_name,
	return_type, javadoc, modifiers, annotations, parameters, calls, called_by,
	part_index, total_parts`

// InsertChunkBatch inserts a chunk list in batches. Chunk IDs are
// deterministic but overloaded methods share them, so like entities there
// is no uniqueness constraint; replacing a project's chunks goes through
// DeleteProject first.
func (s *Store) InsertChunkBatch(project string, chunks []*chunk.Chunk) error {
	const batchSize = 100
	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		if err := s.insertChunkRows(project, chunks[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) insertChunkRows(project string, batch []*chunk.Chunk) error {
	if len(batch) == 0 {
		return nil
	}
	query := `INSERT INTO chunks (project, ` + chunkColumns + `) VALUES `
	args := make([]any, 0, len(batch)*22)
	for i, c := range batch {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args,
			project, c.ID, c.SourceEntityID, c.Text, c.SourceCode, c.FilePath,
			c.StartLine, c.EndLine, string(c.Kind), c.Name, c.QualifiedName,
			c.ClassName, c.PackageName, c.ReturnType, c.Javadoc,
			marshalStrings(c.Modifiers), marshalStrings(c.Annotations),
			marshalStrings(c.Parameters), marshalStrings(c.Calls),
			marshalStrings(c.CalledBy), c.PartIndex, c.TotalParts)
	}
	if _, err := s.q.Exec(query, args...); err != nil {
		return fmt.Errorf("insert chunks: %w", err)
	}
	return nil
}

// ChunksByEntity returns all chunks derived from one entity, parts in
// order.
func (s *Store) ChunksByEntity(project, sourceEntityID string) ([]*chunk.Chunk, error) {
	return s.queryChunks(`SELECT `+chunkColumns+` FROM chunks
		WHERE project=? AND source_entity_id=? ORDER BY part_index, id`, project, sourceEntityID)
}

// AllChunks returns a project's chunks in insertion order.
func (s *Store) AllChunks(project string) ([]*chunk.Chunk, error) {
	return s.queryChunks(`SELECT `+chunkColumns+` FROM chunks
		WHERE project=? ORDER BY id`, project)
}

// CountChunks returns the number of chunks in a project.
func (s *Store) CountChunks(project string) (int, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM chunks WHERE project=?`, project).Scan(&count)
	return count, err
}

func (s *Store) queryChunks(query string, args ...any) ([]*chunk.Chunk, error) {
	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	var chunks []*chunk.Chunk
	for rows.Next() {
		c, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

func scanChunk(rows *sql.Rows) (*chunk.Chunk, error) {
	var c chunk.Chunk
	var kind, modifiers, annotations, parameters, calls, calledBy string
	err := rows.Scan(&c.ID, &c.SourceEntityID, &c.Text, &c.SourceCode, &c.FilePath,
		&c.StartLine, &c.EndLine, &kind, &c.Name, &c.QualifiedName,
		&c.ClassName, &c.PackageName, &c.ReturnType, &c.Javadoc,
		&modifiers, &annotations, &parameters, &calls, &calledBy,
		&c.PartIndex, &c.TotalParts)
	if err != nil {
		return nil, fmt.Errorf("scan chunk: %w", err)
	}
	c.Kind = entity.Kind(kind)
	c.Modifiers = unmarshalStrings(modifiers)
	c.Annotations = unmarshalStrings(annotations)
	c.Parameters = unmarshalStrings(parameters)
	c.Calls = unmarshalStrings(calls)
	c.CalledBy = unmarshalStrings(calledBy)
	return &c, nil
}
