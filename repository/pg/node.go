package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/mkrogh/project-calculator/domain"
)

// NodePostgresRepository persists hierarchy nodes across the four tables.
// Cascade deletes are handled by the ON DELETE CASCADE foreign keys.
type NodePostgresRepository struct {
	pool *pgxpool.Pool
}

func CreateProjectTable() string {
	return `CREATE TABLE IF NOT EXISTS projects
(
	id SERIAL NOT NULL PRIMARY KEY,
	name VARCHAR(50) NOT NULL CHECK (name <> ''),
	description VARCHAR(200) NOT NULL DEFAULT '',
	deadline DATE
);`
}

func CreateSubProjectTable() string {
	return `CREATE TABLE IF NOT EXISTS subprojects
(
	id SERIAL NOT NULL PRIMARY KEY,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name VARCHAR(50) NOT NULL CHECK (name <> ''),
	description VARCHAR(200) NOT NULL DEFAULT '',
	deadline DATE
);`
}

func CreateTaskTable() string {
	return `CREATE TABLE IF NOT EXISTS tasks
(
	id SERIAL NOT NULL PRIMARY KEY,
	subproject_id INTEGER NOT NULL REFERENCES subprojects(id) ON DELETE CASCADE,
	name VARCHAR(50) NOT NULL CHECK (name <> ''),
	description VARCHAR(200) NOT NULL DEFAULT '',
	deadline DATE
);`
}

func CreateSubTaskTable() string {
	return `CREATE TABLE IF NOT EXISTS subtasks
(
	id SERIAL NOT NULL PRIMARY KEY,
	task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	name VARCHAR(50) NOT NULL CHECK (name <> ''),
	description VARCHAR(200) NOT NULL DEFAULT '',
	deadline DATE,
	estimated_hours DOUBLE PRECISION NOT NULL CHECK (estimated_hours > 0)
);`
}

type levelSchema struct {
	table     string
	parentCol string
	hasHours  bool
}

func schemaFor(level domain.Level) levelSchema {
	switch level {
	case domain.LevelProject:
		return levelSchema{table: "projects"}
	case domain.LevelSubProject:
		return levelSchema{table: "subprojects", parentCol: "project_id"}
	case domain.LevelTask:
		return levelSchema{table: "tasks", parentCol: "subproject_id"}
	case domain.LevelSubTask:
		return levelSchema{table: "subtasks", parentCol: "task_id", hasHours: true}
	}
	panic(fmt.Sprintf("pg: unknown level %d", level))
}

// One deserializer per table schema. Each is total over its column list and
// errors on a null required column instead of defaulting.

func scanProject(row pgx.Row) (*domain.Node, error) {
	n := domain.Node{Level: domain.LevelProject}
	var deadline pgtype.Date
	if err := row.Scan(&n.ID, &n.Name, &n.Description, &deadline); err != nil {
		return nil, err
	}
	setDeadline(&n, deadline)
	return &n, nil
}

func scanSubProject(row pgx.Row) (*domain.Node, error) {
	n := domain.Node{Level: domain.LevelSubProject}
	var deadline pgtype.Date
	if err := row.Scan(&n.ID, &n.ParentID, &n.Name, &n.Description, &deadline); err != nil {
		return nil, err
	}
	setDeadline(&n, deadline)
	return &n, nil
}

func scanTask(row pgx.Row) (*domain.Node, error) {
	n := domain.Node{Level: domain.LevelTask}
	var deadline pgtype.Date
	if err := row.Scan(&n.ID, &n.ParentID, &n.Name, &n.Description, &deadline); err != nil {
		return nil, err
	}
	setDeadline(&n, deadline)
	return &n, nil
}

func scanSubTask(row pgx.Row) (*domain.Node, error) {
	n := domain.Node{Level: domain.LevelSubTask}
	var deadline pgtype.Date
	var hours pgtype.Float8
	if err := row.Scan(&n.ID, &n.ParentID, &n.Name, &n.Description, &deadline, &hours); err != nil {
		return nil, err
	}
	if hours.Status != pgtype.Present {
		return nil, errors.New("subtasks row is missing estimated_hours")
	}
	n.EstimatedHours = &hours.Float
	setDeadline(&n, deadline)
	return &n, nil
}

func setDeadline(n *domain.Node, deadline pgtype.Date) {
	if deadline.Status == pgtype.Present {
		d := domain.Date{Time: deadline.Time}
		n.Deadline = &d
	}
}

func scanNode(level domain.Level, row pgx.Row) (*domain.Node, error) {
	switch level {
	case domain.LevelProject:
		return scanProject(row)
	case domain.LevelSubProject:
		return scanSubProject(row)
	case domain.LevelTask:
		return scanTask(row)
	default:
		return scanSubTask(row)
	}
}

func selectColumns(s levelSchema) string {
	cols := "id, "
	if s.parentCol != "" {
		cols += s.parentCol + ", "
	}
	cols += "name, description, deadline"
	if s.hasHours {
		cols += ", estimated_hours"
	}
	return cols
}

func deadlineArg(n *domain.Node) interface{} {
	if n.Deadline == nil {
		return nil
	}
	return n.Deadline.Time
}

func (r *NodePostgresRepository) GetByID(ctx context.Context, level domain.Level, id int64) (*domain.Node, error) {
	s := schemaFor(level)
	row := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", selectColumns(s), s.table), id)
	node, err := scanNode(level, row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return node, nil
}

func (r *NodePostgresRepository) GetByParentID(ctx context.Context, level domain.Level, parentID int64) ([]domain.Node, error) {
	s := schemaFor(level)
	var rows pgx.Rows
	var err error
	if s.parentCol == "" {
		rows, err = r.pool.Query(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY id ASC", selectColumns(s), s.table))
	} else {
		rows, err = r.pool.Query(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY id ASC", selectColumns(s), s.table, s.parentCol), parentID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]domain.Node, 0)
	for rows.Next() {
		node, err := scanNode(level, rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, *node)
	}
	return ret, rows.Err()
}

func (r *NodePostgresRepository) Insert(ctx context.Context, node *domain.Node) error {
	s := schemaFor(node.Level)
	var row pgx.Row
	switch {
	case s.parentCol == "":
		row = r.pool.QueryRow(ctx,
			fmt.Sprintf("INSERT INTO %s (name, description, deadline) VALUES ($1, $2, $3) RETURNING id", s.table),
			node.Name, node.Description, deadlineArg(node))
	case s.hasHours:
		row = r.pool.QueryRow(ctx,
			fmt.Sprintf("INSERT INTO %s (%s, name, description, deadline, estimated_hours) VALUES ($1, $2, $3, $4, $5) RETURNING id", s.table, s.parentCol),
			node.ParentID, node.Name, node.Description, deadlineArg(node), node.EstimatedHours)
	default:
		row = r.pool.QueryRow(ctx,
			fmt.Sprintf("INSERT INTO %s (%s, name, description, deadline) VALUES ($1, $2, $3, $4) RETURNING id", s.table, s.parentCol),
			node.ParentID, node.Name, node.Description, deadlineArg(node))
	}
	return row.Scan(&node.ID)
}

func (r *NodePostgresRepository) Update(ctx context.Context, node *domain.Node) (bool, error) {
	s := schemaFor(node.Level)
	var query string
	args := []interface{}{node.Name, node.Description, deadlineArg(node)}
	switch {
	case s.parentCol == "":
		query = fmt.Sprintf("UPDATE %s SET name = $1, description = $2, deadline = $3 WHERE id = $4", s.table)
		args = append(args, node.ID)
	case s.hasHours:
		query = fmt.Sprintf("UPDATE %s SET name = $1, description = $2, deadline = $3, estimated_hours = $4 WHERE id = $5 AND %s = $6", s.table, s.parentCol)
		args = append(args, node.EstimatedHours, node.ID, node.ParentID)
	default:
		query = fmt.Sprintf("UPDATE %s SET name = $1, description = $2, deadline = $3 WHERE id = $4 AND %s = $5", s.table, s.parentCol)
		args = append(args, node.ID, node.ParentID)
	}
	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *NodePostgresRepository) Delete(ctx context.Context, level domain.Level, id int64) (bool, error) {
	s := schemaFor(level)
	ct, err := r.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.table), id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *NodePostgresRepository) Exists(ctx context.Context, level domain.Level, id int64) (bool, error) {
	s := schemaFor(level)
	var exists bool
	row := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", s.table), id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func NewNodePostgresRepository(pool *pgxpool.Pool) *NodePostgresRepository {
	return &NodePostgresRepository{
		pool: pool,
	}
}
