package apper

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MemoryClient keeps tables in process memory. It stands in for the remote
// backend in local runs and tests.
type MemoryClient struct {
	mu     sync.RWMutex
	tables map[string]*memoryTable
	now    func() time.Time
}

type memoryTable struct {
	nextID int
	rows   []Record
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		tables: make(map[string]*memoryTable),
		now:    time.Now,
	}
}

// WithClock replaces the clock used to stamp CreatedOn/ModifiedOn.
func (c *MemoryClient) WithClock(now func() time.Time) *MemoryClient {
	c.now = now
	return c
}

// Seed inserts records as given, keeping any CreatedOn they carry. It
// returns the assigned ids.
func (c *MemoryClient) Seed(table string, records ...Record) []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(table)
	ids := make([]int, 0, len(records))
	for _, r := range records {
		row := t.insert(r, c.now())
		if created, ok := r[FieldCreatedOn]; ok {
			row[FieldCreatedOn] = created
		}
		ids = append(ids, row[FieldID].(int))
	}
	return ids
}

func (c *MemoryClient) FetchRecords(ctx context.Context, table string, params FetchParams) (*FetchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[table]
	if !ok {
		return &FetchResponse{Success: true, Data: []Record{}}, nil
	}

	var matched []Record
	for _, row := range t.rows {
		if matchesAll(row, params) {
			matched = append(matched, row)
		}
	}

	sortRecords(matched, params.OrderBy)

	if p := params.PagingInfo; p != nil {
		matched = page(matched, p.Offset, p.Limit)
	}

	out := make([]Record, 0, len(matched))
	for _, row := range matched {
		out = append(out, project(row, params.Fields))
	}
	return &FetchResponse{Success: true, Data: out}, nil
}

func (c *MemoryClient) GetRecordByID(ctx context.Context, table string, id int, params FetchParams) (*RecordResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if t, ok := c.tables[table]; ok {
		if _, row := t.find(id); row != nil {
			return &RecordResponse{Success: true, Data: project(row, params.Fields)}, nil
		}
	}
	return &RecordResponse{Success: false, Message: fmt.Sprintf("Record with Id %d not found", id)}, nil
}

func (c *MemoryClient) CreateRecord(ctx context.Context, table string, records []Record) (*MutationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(table)
	resp := &MutationResponse{Success: true}
	for _, r := range records {
		row := t.insert(r, c.now())
		resp.Results = append(resp.Results, Result{Success: true, Data: copyRecord(row)})
	}
	return resp, nil
}

func (c *MemoryClient) UpdateRecord(ctx context.Context, table string, records []Record) (*MutationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(table)
	resp := &MutationResponse{Success: true}
	for _, r := range records {
		id, ok := toInt(r[FieldID])
		if !ok {
			resp.Results = append(resp.Results, Result{Success: false, Message: "Id is required"})
			continue
		}
		_, row := t.find(id)
		if row == nil {
			resp.Results = append(resp.Results, Result{Success: false, Message: fmt.Sprintf("Record with Id %d not found", id)})
			continue
		}
		for k, v := range r {
			if k == FieldID || k == FieldCreatedOn {
				continue
			}
			row[k] = v
		}
		row[FieldModifiedOn] = formatTime(c.now())
		resp.Results = append(resp.Results, Result{Success: true, Data: copyRecord(row)})
	}
	return resp, nil
}

func (c *MemoryClient) DeleteRecord(ctx context.Context, table string, ids []int) (*MutationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(table)
	resp := &MutationResponse{Success: true}
	for _, id := range ids {
		i, row := t.find(id)
		if row == nil {
			resp.Results = append(resp.Results, Result{Success: false, Message: fmt.Sprintf("Record with Id %d not found", id)})
			continue
		}
		t.rows = append(t.rows[:i], t.rows[i+1:]...)
		resp.Results = append(resp.Results, Result{Success: true, Data: Record{FieldID: id}})
	}
	return resp, nil
}

func (c *MemoryClient) table(name string) *memoryTable {
	t, ok := c.tables[name]
	if !ok {
		t = &memoryTable{nextID: 1}
		c.tables[name] = t
	}
	return t
}

func (t *memoryTable) insert(r Record, now time.Time) Record {
	row := copyRecord(r)
	row[FieldID] = t.nextID
	t.nextID++
	stamp := formatTime(now)
	row[FieldCreatedOn] = stamp
	row[FieldModifiedOn] = stamp
	t.rows = append(t.rows, row)
	return row
}

func (t *memoryTable) find(id int) (int, Record) {
	for i, row := range t.rows {
		if rowID, _ := toInt(row[FieldID]); rowID == id {
			return i, row
		}
	}
	return -1, nil
}

func copyRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// project keeps the requested fields plus the system columns. Reference
// fields come back as {"Id": n} lookups.
func project(row Record, fields []Field) Record {
	if len(fields) == 0 {
		return copyRecord(row)
	}
	out := Record{
		FieldID:         row[FieldID],
		FieldCreatedOn:  row[FieldCreatedOn],
		FieldModifiedOn: row[FieldModifiedOn],
	}
	for _, f := range fields {
		v, ok := row[f.Name]
		if !ok {
			continue
		}
		if f.Reference != "" {
			if id, ok := toInt(v); ok {
				v = Record{FieldID: id}
			}
		}
		out[f.Name] = v
	}
	return out
}

func page(rows []Record, offset, limit int) []Record {
	if offset >= len(rows) {
		return nil
	}
	if offset > 0 {
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func matchesAll(row Record, params FetchParams) bool {
	for _, cond := range params.Where {
		ok := evaluate(row, cond.FieldName, cond.Operator, cond.Values)
		if ok != cond.Include {
			return false
		}
	}
	for _, group := range params.WhereGroups {
		if !matchGroup(row, group) {
			return false
		}
	}
	return true
}

func matchGroup(row Record, group WhereGroup) bool {
	or := strings.EqualFold(group.Operator, "OR")
	for _, sub := range group.SubGroups {
		ok := matchSubGroup(row, sub)
		if or && ok {
			return true
		}
		if !or && !ok {
			return false
		}
	}
	return !or || len(group.SubGroups) == 0
}

func matchSubGroup(row Record, sub SubGroup) bool {
	or := strings.EqualFold(sub.Operator, "OR")
	for _, cond := range sub.Conditions {
		ok := evaluate(row, cond.FieldName, cond.Operator, cond.Values)
		if or && ok {
			return true
		}
		if !or && !ok {
			return false
		}
	}
	return !or || len(sub.Conditions) == 0
}

func evaluate(row Record, field string, op Operator, values []any) bool {
	v := row[field]
	switch op {
	case OpExactMatch:
		for _, want := range values {
			if equal(v, want) {
				return true
			}
		}
		return false
	case OpContains:
		haystack := strings.ToLower(toString(v))
		for _, want := range values {
			if strings.Contains(haystack, strings.ToLower(toString(want))) {
				return true
			}
		}
		return false
	case OpNotEqualTo:
		for _, other := range values {
			if equal(v, other) {
				return false
			}
		}
		return true
	case OpHasValue:
		return !isEmpty(v)
	case OpGreaterThanOrEqualTo, OpLessThanOrEqualTo, OpLessThan:
		if len(values) == 0 || isEmpty(v) {
			return false
		}
		other := resolve(row, values[0])
		if isEmpty(other) {
			return false
		}
		cmp := compare(v, other)
		switch op {
		case OpGreaterThanOrEqualTo:
			return cmp >= 0
		case OpLessThanOrEqualTo:
			return cmp <= 0
		default:
			return cmp < 0
		}
	}
	return false
}

// resolve lets a comparison value name another column of the same row.
func resolve(row Record, v any) any {
	if name, ok := v.(string); ok {
		if other, exists := row[name]; exists {
			return other
		}
	}
	return v
}

func sortRecords(rows []Record, orderBy []OrderBy) {
	if len(orderBy) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range orderBy {
			cmp := compare(rows[i][o.FieldName], rows[j][o.FieldName])
			if cmp == 0 {
				continue
			}
			if o.SortType == SortDesc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func equal(a, b any) bool {
	if x, ok := toNumber(a); ok {
		if y, ok := toNumber(b); ok {
			return x == y
		}
	}
	return toString(a) == toString(b)
}

func compare(a, b any) int {
	if x, ok := toNumber(a); ok {
		if y, ok := toNumber(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(toString(a), toString(b))
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	}
	return false
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	f, ok := toNumber(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}
