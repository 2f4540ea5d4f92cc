package apper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchParamsWireFormat(t *testing.T) {
	params := FetchParams{
		Fields:     []Field{{Name: "rating_c"}, {Name: "product_id_c", Reference: "name_c"}},
		Where:      []Condition{{FieldName: "product_id_c", Operator: OpExactMatch, Values: []any{3}, Include: true}},
		OrderBy:    []OrderBy{{FieldName: "CreatedOn", SortType: SortDesc}},
		PagingInfo: &PagingInfo{Limit: 8},
	}

	data, err := json.Marshal(params)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"fields": [
			{"field": {"Name": "rating_c"}},
			{"field": {"Name": "product_id_c"}, "referenceField": {"field": {"Name": "name_c"}}}
		],
		"where": [{"FieldName": "product_id_c", "Operator": "ExactMatch", "Values": [3], "Include": true}],
		"orderBy": [{"fieldName": "CreatedOn", "sorttype": "DESC"}],
		"pagingInfo": {"limit": 8, "offset": 0}
	}`, string(data))

	var back FetchParams
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, params.Fields, back.Fields)
}

func TestFetchParamsWhereList(t *testing.T) {
	empty, err := json.Marshal(FetchParams{Fields: Fields("name_c"), Where: []Condition{}})
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"where":[]`)

	omitted, err := json.Marshal(FetchParams{Fields: Fields("name_c")})
	require.NoError(t, err)
	assert.NotContains(t, string(omitted), `"where"`)

	var back FetchParams
	require.NoError(t, json.Unmarshal(empty, &back))
	assert.Equal(t, []Field{{Name: "name_c"}}, back.Fields)
}

func TestHTTPClient_FetchRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tables/products_c/records/fetch", r.URL.Path)
		assert.Equal(t, "proj", r.Header.Get("Apper-Project-Id"))
		assert.Equal(t, "key", r.Header.Get("Apper-Public-Key"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"fields":[{"field":{"Name":"name_c"}}]}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":[{"Id":1,"name_c":"Linen Shirt"}]}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "proj", "key", time.Second)
	resp, err := c.FetchRecords(context.Background(), "products_c", FetchParams{Fields: Fields("name_c")})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Linen Shirt", resp.Data[0]["name_c"])
	assert.Equal(t, float64(1), resp.Data[0]["Id"])
}

func TestHTTPClient_Mutations(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = io.WriteString(w, `{"success":true,"results":[{"success":true,"data":{"Id":4}},{"success":false,"message":"bad"}]}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "proj", "key", time.Second)
	ctx := context.Background()

	resp, err := c.CreateRecord(ctx, "reviews_c", []Record{{"rating_c": 5}})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/tables/reviews_c/records", gotPath)
	assert.JSONEq(t, `{"records":[{"rating_c":5}]}`, gotBody)
	ok, failed := resp.Split()
	assert.Len(t, ok, 1)
	assert.Len(t, failed, 1)

	_, err = c.UpdateRecord(ctx, "reviews_c", []Record{{"Id": 4, "rating_c": 3}})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)

	_, err = c.DeleteRecord(ctx, "reviews_c", []int{4})
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.JSONEq(t, `{"RecordIds":[4]}`, gotBody)

	_, err = c.GetRecordByID(ctx, "reviews_c", 4, FetchParams{})
	require.NoError(t, err)
	assert.Equal(t, "/tables/reviews_c/records/4/fetch", gotPath)
}

func TestHTTPClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "", time.Second)
	_, err := c.FetchRecords(context.Background(), "orders_c", FetchParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPClient_BackendFailureIsNotTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"message":"Invalid field"}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "", time.Second)
	resp, err := c.FetchRecords(context.Background(), "orders_c", FetchParams{})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid field", resp.Message)
}
