package store

import "fmt"

// CallEdge is one resolved caller -> callee relationship. Internal marks
// edges whose callee exists as an extracted entity; external edges point
// at resolved-but-out-of-corpus targets (framework classes).
type CallEdge struct {
	CallerQN string
	CalleeQN string
	Internal bool
}

// InsertCallEdgeBatch inserts resolved call edges, deduplicating on
// (project, caller, callee).
func (s *Store) InsertCallEdgeBatch(project string, edges []CallEdge) error {
	const chunkSize = 400
	for start := 0; start < len(edges); start += chunkSize {
		end := start + chunkSize
		if end > len(edges) {
			end = len(edges)
		}
		if err := s.insertEdgeChunk(project, edges[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) insertEdgeChunk(project string, batch []CallEdge) error {
	if len(batch) == 0 {
		return nil
	}
	query := `INSERT INTO call_edges (project, caller_qn, callee_qn, internal) VALUES `
	args := make([]any, 0, len(batch)*4)
	for i, e := range batch {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		internal := 0
		if e.Internal {
			internal = 1
		}
		args = append(args, project, e.CallerQN, e.CalleeQN, internal)
	}
	query += ` ON CONFLICT(project, caller_qn, callee_qn) DO UPDATE SET internal=excluded.internal`
	if _, err := s.q.Exec(query, args...); err != nil {
		return fmt.Errorf("insert call edges: %w", err)
	}
	return nil
}

// CalleesOf returns the callee qualified names of a caller, sorted.
func (s *Store) CalleesOf(project, callerQN string) ([]string, error) {
	return s.queryEdgeColumn(`SELECT callee_qn FROM call_edges
		WHERE project=? AND caller_qn=? ORDER BY callee_qn`, project, callerQN)
}

// CallersOf returns the caller qualified names of a callee, sorted.
func (s *Store) CallersOf(project, calleeQN string) ([]string, error) {
	return s.queryEdgeColumn(`SELECT caller_qn FROM call_edges
		WHERE project=? AND callee_qn=? ORDER BY caller_qn`, project, calleeQN)
}

// CountCallEdges returns the number of call edges in a project.
func (s *Store) CountCallEdges(project string) (int, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM call_edges WHERE project=?`, project).Scan(&count)
	return count, err
}

func (s *Store) queryEdgeColumn(query string, args ...any) ([]string, error) {
	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
