package store

import (
	"database/sql"
	"fmt"

	"github.com/DeusData/javagraph/internal/entity"
)

const entityColumns = `kind, name, qualified_name, file_path, start_line, end_line,
	class_name, package_name, return_type, source_code, javadoc,
	modifiers, annotations, parameters, calls, called_by`

// InsertEntityBatch inserts a resolved entity list in chunks.
// Overloaded methods legitimately share a qualified name, so there is no
// uniqueness constraint on entities; replacing a project's entities goes
// through DeleteEntitiesByProject first.
func (s *Store) InsertEntityBatch(project string, entities []*entity.Entity) error {
	const chunkSize = 200
	for start := 0; start < len(entities); start += chunkSize {
		end := start + chunkSize
		if end > len(entities) {
			end = len(entities)
		}
		if err := s.insertEntityChunk(project, entities[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) insertEntityChunk(project string, batch []*entity.Entity) error {
	if len(batch) == 0 {
		return nil
	}
	query := `INSERT INTO entities (project, ` + entityColumns + `) VALUES `
	args := make([]any, 0, len(batch)*17)
	for i, e := range batch {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args,
			project, string(e.Kind), e.Name, e.QualifiedName, e.FilePath,
			e.StartLine, e.EndLine, e.ClassName, e.PackageName, e.ReturnType,
			e.SourceCode, e.Javadoc,
			marshalStrings(e.Modifiers), marshalStrings(e.Annotations),
			marshalStrings(e.Parameters), marshalStrings(e.Calls),
			marshalStrings(e.CalledBy))
	}
	if _, err := s.q.Exec(query, args...); err != nil {
		return fmt.Errorf("insert entities: %w", err)
	}
	return nil
}

// DeleteEntitiesByProject removes all of a project's entities.
func (s *Store) DeleteEntitiesByProject(project string) error {
	if _, err := s.q.Exec(`DELETE FROM entities WHERE project=?`, project); err != nil {
		return fmt.Errorf("delete entities: %w", err)
	}
	return nil
}

// FindEntitiesByQN returns all entities sharing a qualified name
// (more than one for overloaded methods).
func (s *Store) FindEntitiesByQN(project, qualifiedName string) ([]*entity.Entity, error) {
	return s.queryEntities(`SELECT `+entityColumns+` FROM entities
		WHERE project=? AND qualified_name=? ORDER BY id`, project, qualifiedName)
}

// FindEntitiesByKind returns all entities of one kind.
func (s *Store) FindEntitiesByKind(project string, kind entity.Kind) ([]*entity.Entity, error) {
	return s.queryEntities(`SELECT `+entityColumns+` FROM entities
		WHERE project=? AND kind=? ORDER BY id`, project, string(kind))
}

// FindEntitiesByFile returns all entities extracted from one file.
func (s *Store) FindEntitiesByFile(project, filePath string) ([]*entity.Entity, error) {
	return s.queryEntities(`SELECT `+entityColumns+` FROM entities
		WHERE project=? AND file_path=? ORDER BY id`, project, filePath)
}

// AllEntities returns a project's full entity list in insertion order.
func (s *Store) AllEntities(project string) ([]*entity.Entity, error) {
	return s.queryEntities(`SELECT `+entityColumns+` FROM entities
		WHERE project=? ORDER BY id`, project)
}

// CountEntities returns the number of entities in a project.
func (s *Store) CountEntities(project string) (int, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM entities WHERE project=?`, project).Scan(&count)
	return count, err
}

func (s *Store) queryEntities(query string, args ...any) ([]*entity.Entity, error) {
	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	defer rows.Close()

	var entities []*entity.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

func scanEntity(rows *sql.Rows) (*entity.Entity, error) {
	var e entity.Entity
	var kind, modifiers, annotations, parameters, calls, calledBy string
	err := rows.Scan(&kind, &e.Name, &e.QualifiedName, &e.FilePath,
		&e.StartLine, &e.EndLine, &e.ClassName, &e.PackageName, &e.ReturnType,
		&e.SourceCode, &e.Javadoc,
		&modifiers, &annotations, &parameters, &calls, &calledBy)
	if err != nil {
		return nil, fmt.Errorf("scan entity: %w", err)
	}
	e.Kind = entity.Kind(kind)
	e.Modifiers = unmarshalStrings(modifiers)
	e.Annotations = unmarshalStrings(annotations)
	e.Parameters = unmarshalStrings(parameters)
	e.Calls = unmarshalStrings(calls)
	e.CalledBy = unmarshalStrings(calledBy)
	return &e, nil
}
