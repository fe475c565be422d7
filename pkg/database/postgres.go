package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/structs"
)

const (
	tableJob       = "job"
	tableWorkboard = "workboard"
	tableMedia     = "media"

	jobColumns       = `id, user_id, workboard_id, status, priority, input_data, template_ref, progress, result_images, result_videos, error, retry_count, max_retries, parent_id, attempts, queue_task_id, created_at, updated_at, started_at, completed_at, actual_time`
	workboardColumns = `id, name, description, base_input_fields, additional_input_fields, workflow_template, server_address, created_at, updated_at`
	mediaColumns     = `id, job_id, user_id, kind, filename, mime_type, size, storage_key, url, metadata, parameters, created_at`
)

// Postgres is a Database implementation that uses postgres.
type Postgres struct {
	opts *Options
	pool *pgxpool.Pool
}

// NewPostgres returns a new Postgres database connection.
func NewPostgres(opts *Options) (*Postgres, error) {
	opts.SetDefaults()
	pool, err := pgxpool.New(context.Background(), opts.connString())
	return &Postgres{pool: pool, opts: opts}, err
}

// Close shuts down the database connection.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// InsertJob inserts a new job
func (p *Postgres) InsertJob(ctx context.Context, j *structs.Job) error {
	vals, args, err := toJobSqlArgs(1, j) // the sql lib starts at 1
	if err != nil {
		return err
	}
	qstr := fmt.Sprintf(`INSERT INTO %s (%s) VALUES %s;`, tableJob, jobColumns, vals)
	return p.exec(ctx, qstr, args...)
}

// Job returns a single job by ID
func (p *Postgres) Job(ctx context.Context, id string) (*structs.Job, error) {
	found, err := p.Jobs(ctx, &structs.Query{Limit: 1, JobIDs: []string{id}})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: job %s", errors.ErrNotFound, id)
	}
	return found[0], nil
}

// Jobs returns jobs matching the given query, newest first
func (p *Postgres) Jobs(ctx context.Context, q *structs.Query) ([]*structs.Job, error) {
	q.Sanitize()
	where, args := toSqlQuery(map[string][]string{
		"id":           q.JobIDs,
		"user_id":      q.UserIDs,
		"workboard_id": q.WorkboardIDs,
		"status":       statusToStrings(q.Statuses),
	})
	args = append(args, q.Limit, q.Offset)

	qstr := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		jobColumns, tableJob, where, len(args)-1, len(args),
	)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, qstr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []*structs.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// UpdateJob writes the job's mutable fields, if it is currently in one of the expected states.
func (p *Postgres) UpdateJob(ctx context.Context, j *structs.Job, expect []structs.Status) (bool, error) {
	input, err := json.Marshal(j.Input)
	if err != nil {
		return false, err
	}
	images, videos, jerr, err := marshalJobResults(j)
	if err != nil {
		return false, err
	}
	j.UpdatedAt = timeNow()

	args := []interface{}{
		j.Status,
		j.Progress,
		input,
		images,
		videos,
		jerr,
		j.RetryCount,
		j.Attempts,
		j.QueueTaskID,
		j.UpdatedAt,
		j.StartedAt,
		j.CompletedAt,
		j.ActualTime,
		j.ID,
	}
	qstr := fmt.Sprintf(`UPDATE %s SET status=$1, progress=$2, input_data=$3, result_images=$4, result_videos=$5, error=$6, retry_count=$7, attempts=$8, queue_task_id=$9, updated_at=$10, started_at=$11, completed_at=$12, actual_time=$13 WHERE id=$14`, tableJob)
	if len(expect) > 0 {
		in, iargs := toSqlIn(len(args)+1, "status", statusToStrings(expect))
		qstr = fmt.Sprintf("%s AND %s", qstr, in)
		args = append(args, iargs...)
	}
	return p.execCount(ctx, qstr+";", args...)
}

// SetJobStatus moves a job to a final status, if it is currently in one of the expected
// states. Only the status & timing columns are written.
func (p *Postgres) SetJobStatus(ctx context.Context, id string, status structs.Status, at int64, expect []structs.Status) (bool, error) {
	qstr, args := toSetStatusSql(id, status, at, expect)
	return p.execCount(ctx, qstr, args...)
}

func toSetStatusSql(id string, status structs.Status, at int64, expect []structs.Status) (string, []interface{}) {
	args := []interface{}{status, at, id}
	qstr := fmt.Sprintf(
		`UPDATE %s SET status=$1, updated_at=$2, completed_at=$2, actual_time=CASE WHEN started_at > 0 THEN $2 - started_at ELSE actual_time END WHERE id=$3`,
		tableJob,
	)
	if len(expect) > 0 {
		in, iargs := toSqlIn(len(args)+1, "status", statusToStrings(expect))
		qstr = fmt.Sprintf("%s AND %s", qstr, in)
		args = append(args, iargs...)
	}
	return qstr + ";", args
}

// SetJobProgress records progress on a processing job.
func (p *Postgres) SetJobProgress(ctx context.Context, id string, progress int) error {
	qstr := fmt.Sprintf(`UPDATE %s SET progress=$1, updated_at=$2 WHERE id=$3 AND status=$4;`, tableJob)
	return p.exec(ctx, qstr, progress, timeNow(), id, structs.PROCESSING)
}

// DeleteJob removes a job, if it is currently in one of the expected states.
func (p *Postgres) DeleteJob(ctx context.Context, id string, expect []structs.Status) (bool, error) {
	args := []interface{}{id}
	qstr := fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, tableJob)
	if len(expect) > 0 {
		in, iargs := toSqlIn(2, "status", statusToStrings(expect))
		qstr = fmt.Sprintf("%s AND %s", qstr, in)
		args = append(args, iargs...)
	}
	return p.execCount(ctx, qstr+";", args...)
}

// InsertWorkboard inserts a new workboard
func (p *Postgres) InsertWorkboard(ctx context.Context, w *structs.Workboard) error {
	vals, args, err := toWorkboardSqlArgs(1, w)
	if err != nil {
		return err
	}
	qstr := fmt.Sprintf(`INSERT INTO %s (%s) VALUES %s;`, tableWorkboard, workboardColumns, vals)
	return p.exec(ctx, qstr, args...)
}

// Workboard returns a single workboard by ID
func (p *Postgres) Workboard(ctx context.Context, id string) (*structs.Workboard, error) {
	found, err := p.Workboards(ctx, &structs.Query{Limit: 1, WorkboardIDs: []string{id}})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: workboard %s", errors.ErrNotFound, id)
	}
	return found[0], nil
}

// Workboards returns workboards matching the given query, newest first
func (p *Postgres) Workboards(ctx context.Context, q *structs.Query) ([]*structs.Workboard, error) {
	q.Sanitize()
	where, args := toSqlQuery(map[string][]string{"id": q.WorkboardIDs})
	args = append(args, q.Limit, q.Offset)

	qstr := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		workboardColumns, tableWorkboard, where, len(args)-1, len(args),
	)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, qstr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []*structs.Workboard{}
	for rows.Next() {
		w := structs.Workboard{}
		var base, fields []byte
		err = rows.Scan(
			&w.ID,
			&w.Name,
			&w.Description,
			&base,
			&fields,
			&w.WorkflowTemplate,
			&w.ServerAddress,
			&w.CreatedAt,
			&w.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := unmarshalColumns(base, &w.BaseInputFields, fields, &w.AdditionalInputFields); err != nil {
			return nil, err
		}
		boards = append(boards, &w)
	}
	return boards, rows.Err()
}

// InsertMedia inserts a media record
func (p *Postgres) InsertMedia(ctx context.Context, m *structs.Media) error {
	vals, args, err := toMediaSqlArgs(1, m)
	if err != nil {
		return err
	}
	qstr := fmt.Sprintf(`INSERT INTO %s (%s) VALUES %s;`, tableMedia, mediaColumns, vals)
	return p.exec(ctx, qstr, args...)
}

// Media returns media records matching the given query, oldest first (production order)
func (p *Postgres) Media(ctx context.Context, q *structs.Query) ([]*structs.Media, error) {
	q.Sanitize()
	where, args := toSqlQuery(map[string][]string{
		"id":      q.MediaIDs,
		"job_id":  q.JobIDs,
		"user_id": q.UserIDs,
	})
	args = append(args, q.Limit, q.Offset)

	qstr := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d;`,
		mediaColumns, tableMedia, where, len(args)-1, len(args),
	)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, qstr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := []*structs.Media{}
	for rows.Next() {
		m := structs.Media{}
		var meta, params []byte
		err = rows.Scan(
			&m.ID,
			&m.JobID,
			&m.UserID,
			&m.Kind,
			&m.Filename,
			&m.MimeType,
			&m.Size,
			&m.StorageKey,
			&m.URL,
			&meta,
			&params,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := unmarshalColumns(meta, &m.Metadata, params, &m.Parameters); err != nil {
			return nil, err
		}
		found = append(found, &m)
	}
	return found, rows.Err()
}

// DeleteMedia removes a media record
func (p *Postgres) DeleteMedia(ctx context.Context, id string) error {
	return p.exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id=$1;`, tableMedia), id)
}

func (p *Postgres) exec(ctx context.Context, qstr string, args ...interface{}) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, qstr, args...)
	return err
}

func (p *Postgres) execCount(ctx context.Context, qstr string, args ...interface{}) (bool, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	info, err := conn.Exec(ctx, qstr, args...)
	if err != nil {
		return false, err
	}
	return info.RowsAffected() > 0, nil
}

// scanJob reads a row selected with jobColumns
func scanJob(row pgx.Row) (*structs.Job, error) {
	j := structs.Job{}
	var workboardID string
	var input, ref, images, videos, jerr []byte
	err := row.Scan(
		&j.ID,
		&j.UserID,
		&workboardID,
		&j.Status,
		&j.Priority,
		&input,
		&ref,
		&j.Progress,
		&images,
		&videos,
		&jerr,
		&j.RetryCount,
		&j.MaxRetries,
		&j.ParentID,
		&j.Attempts,
		&j.QueueTaskID,
		&j.CreatedAt,
		&j.UpdatedAt,
		&j.StartedAt,
		&j.CompletedAt,
		&j.ActualTime,
	)
	if err != nil {
		return nil, err
	}
	err = unmarshalColumns(input, &j.Input, ref, &j.Workboard, images, &j.ResultImages, videos, &j.ResultVideos)
	if err != nil {
		return nil, err
	}
	if len(jerr) > 0 && string(jerr) != "null" {
		j.Error = &structs.JobError{}
		if err := json.Unmarshal(jerr, j.Error); err != nil {
			return nil, err
		}
	}
	if j.Workboard.ID == "" {
		j.Workboard.ID = workboardID
	}
	return &j, nil
}

// unmarshalColumns decodes pairs of (json column, destination)
func unmarshalColumns(pairs ...interface{}) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		data, _ := pairs[i].([]byte)
		if len(data) == 0 {
			continue
		}
		if err := json.Unmarshal(data, pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func marshalJobResults(j *structs.Job) ([]byte, []byte, []byte, error) {
	images := j.ResultImages
	if images == nil {
		images = []string{}
	}
	videos := j.ResultVideos
	if videos == nil {
		videos = []string{}
	}
	bimages, err := json.Marshal(images)
	if err != nil {
		return nil, nil, nil, err
	}
	bvideos, err := json.Marshal(videos)
	if err != nil {
		return nil, nil, nil, err
	}
	var berr []byte
	if j.Error != nil {
		berr, err = json.Marshal(j.Error)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return bimages, bvideos, berr, nil
}

// toSqlQuery converts query filters into a SQL WHERE clause & args
func toSqlQuery(in map[string][]string) (string, []interface{}) {
	if in == nil {
		in = map[string][]string{}
	}

	// sorted so the generated SQL is stable
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	and := []string{}
	args := []interface{}{}
	for _, k := range keys {
		v := in[k]
		if len(v) == 0 {
			continue
		}
		s, a := toSqlIn(len(args)+1, k, v)
		and = append(and, s)
		args = append(args, a...)
	}
	if len(and) == 0 {
		return "", args
	}
	return fmt.Sprintf("WHERE %s", strings.Join(and, " AND ")), args
}

// toSqlIn converts a list of strings into a SQL IN clause
func toSqlIn(offset int, field string, args []string) (string, []interface{}) {
	if len(args) == 0 {
		return "", []interface{}{}
	}
	vals := []string{}
	ifargs := []interface{}{}
	for i, a := range args {
		vals = append(vals, fmt.Sprintf("$%d", i+offset))
		ifargs = append(ifargs, a)
	}
	return fmt.Sprintf("%s IN (%s)", field, strings.Join(vals, ", ")), ifargs
}

// placeholders returns "($offset, $offset+1, ...)" for n values
func placeholders(offset, n int) string {
	vals := []string{}
	for i := offset; i < n+offset; i++ {
		vals = append(vals, fmt.Sprintf("$%d", i))
	}
	return fmt.Sprintf("(%s)", strings.Join(vals, ", "))
}

// toJobSqlArgs converts a job into a SQL query string & args (for an insert)
func toJobSqlArgs(offset int, j *structs.Job) (string, []interface{}, error) {
	if j.CreatedAt == 0 {
		j.CreatedAt = timeNow()
		j.UpdatedAt = j.CreatedAt
	}
	input, err := json.Marshal(j.Input)
	if err != nil {
		return "", nil, err
	}
	ref, err := json.Marshal(j.Workboard)
	if err != nil {
		return "", nil, err
	}
	images, videos, jerr, err := marshalJobResults(j)
	if err != nil {
		return "", nil, err
	}
	args := []interface{}{
		j.ID,
		j.UserID,
		j.Workboard.ID,
		j.Status,
		j.Priority,
		input,
		ref,
		j.Progress,
		images,
		videos,
		jerr,
		j.RetryCount,
		j.MaxRetries,
		j.ParentID,
		j.Attempts,
		j.QueueTaskID,
		j.CreatedAt,
		j.UpdatedAt,
		j.StartedAt,
		j.CompletedAt,
		j.ActualTime,
	}
	return placeholders(offset, len(args)), args, nil
}

// toWorkboardSqlArgs converts a workboard into a SQL query string & args (for an insert)
func toWorkboardSqlArgs(offset int, w *structs.Workboard) (string, []interface{}, error) {
	if w.CreatedAt == 0 {
		w.CreatedAt = timeNow()
		w.UpdatedAt = w.CreatedAt
	}
	base, err := json.Marshal(w.BaseInputFields)
	if err != nil {
		return "", nil, err
	}
	fields := w.AdditionalInputFields
	if fields == nil {
		fields = []structs.InputField{}
	}
	bfields, err := json.Marshal(fields)
	if err != nil {
		return "", nil, err
	}
	args := []interface{}{
		w.ID,
		w.Name,
		w.Description,
		base,
		bfields,
		w.WorkflowTemplate,
		w.ServerAddress,
		w.CreatedAt,
		w.UpdatedAt,
	}
	return placeholders(offset, len(args)), args, nil
}

// toMediaSqlArgs converts a media record into a SQL query string & args (for an insert)
func toMediaSqlArgs(offset int, m *structs.Media) (string, []interface{}, error) {
	if m.CreatedAt == 0 {
		m.CreatedAt = timeNow()
	}
	meta, err := json.Marshal(m.Metadata)
	if err != nil {
		return "", nil, err
	}
	params, err := json.Marshal(m.Parameters)
	if err != nil {
		return "", nil, err
	}
	args := []interface{}{
		m.ID,
		m.JobID,
		m.UserID,
		m.Kind,
		m.Filename,
		m.MimeType,
		m.Size,
		m.StorageKey,
		m.URL,
		meta,
		params,
		m.CreatedAt,
	}
	return placeholders(offset, len(args)), args, nil
}

// statusToStrings converts a list of statuses into a list of strings
func statusToStrings(in []structs.Status) []string {
	if len(in) == 0 {
		return nil
	}
	out := []string{}
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

// timeNow returns the current time in unix milliseconds
var timeNow = func() int64 {
	return time.Now().UnixMilli()
}
