package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront-service/internal/apper"
)

// Column names of the record-storage collections.
const (
	tableProducts = "products_c"
	tableReviews  = "reviews_c"
	tableOrders   = "orders_c"

	colName          = "name_c"
	colDescription   = "description_c"
	colPrice         = "price_c"
	colOriginalPrice = "original_price_c"
	colCategory      = "category_c"
	colImages        = "images_c"
	colRating        = "rating_c"
	colStock         = "stock_c"
	colSizes         = "sizes_c"
	colColors        = "colors_c"
	colFeatured      = "featured_c"
	colTags          = "Tags"

	colProductID = "product_id_c"
	colUserEmail = "user_email_c"
	colUserName  = "user_name_c"
	colComment   = "comment_c"
	colVerified  = "verified_c"

	colStatus          = "status_c"
	colItems           = "items_c"
	colSubtotal        = "subtotal_c"
	colShipping        = "shipping_c"
	colTax             = "tax_c"
	colTotal           = "total_c"
	colShippingAddress = "shipping_address_c"
	colPaymentMethod   = "payment_method_c"
)

func exactMatch(field string, values ...any) apper.Condition {
	return apper.Condition{FieldName: field, Operator: apper.OpExactMatch, Values: values, Include: true}
}

func newestFirst() []apper.OrderBy {
	return []apper.OrderBy{{FieldName: apper.FieldCreatedOn, SortType: apper.SortDesc}}
}

func fetch(ctx context.Context, client apper.Client, table string, params apper.FetchParams) ([]apper.Record, error) {
	if client == nil {
		return nil, ErrBackendUnavailable
	}
	resp, err := client.FetchRecords(ctx, table, params)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrBackendUnavailable, table, err)
	}
	if !resp.Success {
		return nil, &BackendError{Op: "fetch " + table, Message: resp.Message}
	}
	return resp.Data, nil
}

func fetchByID(ctx context.Context, client apper.Client, table string, id int, params apper.FetchParams) (apper.Record, error) {
	if client == nil {
		return nil, ErrBackendUnavailable
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}
	resp, err := client.GetRecordByID(ctx, table, id, params)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s %d: %v", ErrBackendUnavailable, table, id, err)
	}
	if !resp.Success || resp.Data == nil {
		return nil, ErrNotFound
	}
	return resp.Data, nil
}

type mutateFunc func(ctx context.Context, table string, records []apper.Record) (*apper.MutationResponse, error)

// mutateOne sends a single-record write and returns the stored record.
func mutateOne(ctx context.Context, op, table string, fn mutateFunc, record apper.Record) (apper.Record, error) {
	resp, err := fn(ctx, table, []apper.Record{record})
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrBackendUnavailable, op, table, err)
	}
	ok, err := checkMutation(op, resp)
	if err != nil {
		return nil, err
	}
	if len(ok) == 0 {
		return nil, &BackendError{Op: op, Message: "no record returned"}
	}
	return ok[0].Data, nil
}

func checkMutation(op string, resp *apper.MutationResponse) ([]apper.Result, error) {
	if !resp.Success {
		return nil, &BackendError{Op: op, Message: resp.Message}
	}
	ok, failed := resp.Split()
	if len(failed) > 0 {
		msgs := make([]string, 0, len(failed))
		for _, f := range failed {
			msgs = append(msgs, f.Message)
		}
		return ok, &BatchError{Op: op, Succeeded: len(ok), Messages: msgs}
	}
	return ok, nil
}

func recordString(v any) string {
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

func recordFloat(v any) float64 {
	f, _ := parseFloat(v)
	return f
}

// recordOptionalFloat treats a missing, empty or zero value as absent.
func recordOptionalFloat(v any) *float64 {
	f, ok := parseFloat(v)
	if !ok || f == 0 {
		return nil
	}
	return &f
}

func parseFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func recordInt(v any) int {
	f, _ := parseFloat(v)
	return int(f)
}

// recordLookupID reads a lookup column, which comes back either as the
// bare id or as the referenced record.
func recordLookupID(v any) (int, bool) {
	switch t := v.(type) {
	case apper.Record:
		return recordLookupID(t[apper.FieldID])
	case map[string]any:
		return recordLookupID(t[apper.FieldID])
	}
	f, ok := parseFloat(v)
	if !ok || f == 0 {
		return 0, false
	}
	return int(f), true
}

func recordBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// recordList splits a comma-separated column.
func recordList(v any) []string {
	out := []string{}
	s := recordString(v)
	if s == "" {
		return out
	}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func recordTime(v any) time.Time {
	s := recordString(v)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// decodeJSONColumn reads a column holding JSON text. Backends that
// already parsed the text hand back the structure itself.
func decodeJSONColumn(v any, dst any) error {
	var data []byte
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		data = []byte(t)
	default:
		var err error
		if data, err = json.Marshal(t); err != nil {
			return err
		}
	}
	return json.Unmarshal(data, dst)
}

func encodeJSONColumn(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
