// Package apper speaks the generic record-storage API the storefront keeps
// its collections in. Field names, operators and envelope keys mirror the
// backend's wire format exactly; adapters in internal/repository translate
// between these records and the storefront models.
package apper

import (
	"encoding/json"
	"time"
)

// TimeLayout is the fixed-width UTC layout used for CreatedOn/ModifiedOn,
// so that lexical and chronological order agree.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	FieldID         = "Id"
	FieldCreatedOn  = "CreatedOn"
	FieldModifiedOn = "ModifiedOn"
)

type Operator string

const (
	OpExactMatch           Operator = "ExactMatch"
	OpContains             Operator = "Contains"
	OpGreaterThanOrEqualTo Operator = "GreaterThanOrEqualTo"
	OpLessThanOrEqualTo    Operator = "LessThanOrEqualTo"
	OpLessThan             Operator = "LessThan"
	OpNotEqualTo           Operator = "NotEqualTo"
	OpHasValue             Operator = "HasValue"
)

type SortType string

const (
	SortAsc  SortType = "ASC"
	SortDesc SortType = "DESC"
)

// Record is one row as the backend sends it: column name to JSON value.
type Record map[string]any

// Field selects a column. Reference names the column to read from the
// referenced record when the column is a lookup.
type Field struct {
	Name      string
	Reference string
}

type fieldName struct {
	Name string `json:"Name"`
}

type fieldRef struct {
	Field fieldName `json:"field"`
}

func (f Field) MarshalJSON() ([]byte, error) {
	out := struct {
		Field          fieldName `json:"field"`
		ReferenceField *fieldRef `json:"referenceField,omitempty"`
	}{Field: fieldName{Name: f.Name}}
	if f.Reference != "" {
		out.ReferenceField = &fieldRef{Field: fieldName{Name: f.Reference}}
	}
	return json.Marshal(out)
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var in struct {
		Field          fieldName `json:"field"`
		ReferenceField *fieldRef `json:"referenceField"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	f.Name = in.Field.Name
	f.Reference = ""
	if in.ReferenceField != nil {
		f.Reference = in.ReferenceField.Field.Name
	}
	return nil
}

// Fields builds a plain field list.
func Fields(names ...string) []Field {
	out := make([]Field, 0, len(names))
	for _, n := range names {
		out = append(out, Field{Name: n})
	}
	return out
}

type Condition struct {
	FieldName string   `json:"FieldName"`
	Operator  Operator `json:"Operator"`
	Values    []any    `json:"Values"`
	Include   bool     `json:"Include"`
}

type GroupCondition struct {
	FieldName string   `json:"fieldName"`
	Operator  Operator `json:"operator"`
	Values    []any    `json:"values"`
}

type SubGroup struct {
	Conditions []GroupCondition `json:"conditions"`
	Operator   string           `json:"operator"`
}

type WhereGroup struct {
	Operator  string     `json:"operator"`
	SubGroups []SubGroup `json:"subGroups"`
}

type OrderBy struct {
	FieldName string   `json:"fieldName"`
	SortType  SortType `json:"sorttype"`
}

type PagingInfo struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type FetchParams struct {
	Fields      []Field      `json:"fields"`
	Where       []Condition  `json:"where,omitempty"`
	WhereGroups []WhereGroup `json:"whereGroups,omitempty"`
	OrderBy     []OrderBy    `json:"orderBy,omitempty"`
	PagingInfo  *PagingInfo  `json:"pagingInfo,omitempty"`
}

// MarshalJSON drops a nil Where but sends an empty, non-nil one as [].
func (p FetchParams) MarshalJSON() ([]byte, error) {
	type plain FetchParams
	var where *[]Condition
	if p.Where != nil {
		where = &p.Where
	}
	return json.Marshal(struct {
		plain
		Where *[]Condition `json:"where,omitempty"`
	}{plain: plain(p), Where: where})
}

type FetchResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    []Record `json:"data"`
}

type RecordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    Record `json:"data"`
}

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    Record `json:"data,omitempty"`
}

type MutationResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Results []Result `json:"results"`
}

// Split partitions the per-record results.
func (r *MutationResponse) Split() (succeeded, failed []Result) {
	for _, res := range r.Results {
		if res.Success {
			succeeded = append(succeeded, res)
		} else {
			failed = append(failed, res)
		}
	}
	return succeeded, failed
}

type mutationRequest struct {
	Records []Record `json:"records"`
}

type deleteRequest struct {
	RecordIDs []int `json:"RecordIds"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
